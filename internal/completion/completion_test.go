package completion

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	resp Response
	err  error
	reqs []Request
}

func (f *fakeCompleter) Complete(_ context.Context, req Request) (Response, error) {
	f.reqs = append(f.reqs, req)
	return f.resp, f.err
}

func TestRun_PrintsFirstChoiceText(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{resp: Response{Choices: []Choice{
		{Index: 0, Text: "This is a test."},
		{Index: 1, Text: "ignored"},
	}}}

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), fake, &out))
	assert.Equal(t, "This is a test.\n", out.String())
}

func TestRun_KeepsRawWhitespace(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{resp: Response{Choices: []Choice{{Text: "\n\nThis is a test. "}}}}

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), fake, &out))
	assert.Equal(t, "\n\nThis is a test. \n", out.String())
}

func TestRun_SendsFixedRequestOnce(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{resp: Response{Choices: []Choice{{Text: "ok"}}}}

	require.NoError(t, Run(context.Background(), fake, &bytes.Buffer{}))
	require.Len(t, fake.reqs, 1)
	assert.Equal(t, Request{
		Model:       "text-davinci-003",
		Prompt:      "Say this is a test",
		Temperature: 0,
		MaxTokens:   7,
	}, fake.reqs[0])
}

func TestRun_FailsOnEmptyChoices(t *testing.T) {
	t.Parallel()

	fake := &fakeCompleter{resp: Response{}}

	var out bytes.Buffer
	err := Run(context.Background(), fake, &out)
	require.ErrorIs(t, err, ErrNoChoices)
	assert.Empty(t, out.String())
}

func TestRun_ReturnsCompleterErrorWithoutRetry(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	fake := &fakeCompleter{err: boom}

	var out bytes.Buffer
	err := Run(context.Background(), fake, &out)
	require.ErrorIs(t, err, boom)
	assert.Len(t, fake.reqs, 1)
	assert.Empty(t, out.String())
}

func TestFirstText(t *testing.T) {
	t.Parallel()

	text, err := FirstText(Response{Choices: []Choice{{Text: "a"}, {Text: "b"}}})
	require.NoError(t, err)
	assert.Equal(t, "a", text)

	_, err = FirstText(Response{Choices: []Choice{}})
	require.ErrorIs(t, err, ErrNoChoices)
}
