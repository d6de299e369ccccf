package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuropath/internal/llm"
	llmclient "neuropath/internal/llmClient"
	"neuropath/internal/types"
)

func TestBuildPromptLayout(t *testing.T) {
	got := BuildPrompt("Photosynthesis turns light into sugar.", "What is sugar for?")
	assert.Equal(t, "CONTEXT CONTENT:\nPhotosynthesis turns light into sugar.\n\nUSER QUESTION: What is sugar for?", got)
}

func TestContextTextPrecedence(t *testing.T) {
	assert.Equal(t, "adapted", ContextText("adapted", "raw"))
	assert.Equal(t, "raw", ContextText("", "raw"))
	assert.Equal(t, NoContext, ContextText("", ""))
}

func TestAskSendsPersonaAndContext(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeResponse{Resp: llm.TextResponse("- one\n- two\n- three")})
	c := New(fake, Options{})

	reply, err := c.Ask(context.Background(), "Some context", ExplainSimply.Message)
	require.NoError(t, err)
	assert.Equal(t, "- one\n- two\n- three", reply)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, Op, calls[0].Op)
	assert.Equal(t, llmclient.DefaultChatModel, calls[0].Model)
	require.Len(t, calls[0].Contents, 1)
	assert.Equal(t, BuildPrompt("Some context", ExplainSimply.Message), calls[0].Contents[0].Parts[0].Text)
	require.NotNil(t, calls[0].Config.SystemInstruction)
	assert.Equal(t, SystemInstruction, calls[0].Config.SystemInstruction.Parts[0].Text)
	require.NotNil(t, calls[0].Config.Temperature)
	assert.InDelta(t, 0.7, *calls[0].Config.Temperature, 1e-6)
}

func TestAskEmptyReplyFallsBack(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeResponse{Resp: llm.TextResponse("   ")})
	reply, err := New(fake, Options{}).Ask(context.Background(), NoContext, "hi")
	require.NoError(t, err)
	assert.Equal(t, EmptyReply, reply)
}

func TestSendAppendsUserThenAssistant(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeResponse{Resp: llm.TextResponse("Sure, take a break.")})
	c := New(fake, Options{})
	tr := NewGreetingTranscript()
	require.Equal(t, 1, tr.Len())

	msg, err := c.Send(context.Background(), tr, "ctx", CheckIn.Message)
	require.NoError(t, err)
	assert.Equal(t, types.ChatMessage{Role: types.RoleAssistant, Text: "Sure, take a break."}, msg)

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, types.ChatMessage{Role: types.RoleAssistant, Text: Greeting}, msgs[0])
	assert.Equal(t, types.ChatMessage{Role: types.RoleUser, Text: CheckIn.Message}, msgs[1])
	assert.Equal(t, msg, msgs[2])
}

func TestSendFailureAppendsApology(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeResponse{Err: errors.New("unavailable")})
	tr := NewGreetingTranscript()

	msg, err := New(fake, Options{}).Send(context.Background(), tr, "ctx", "hello")
	require.NoError(t, err)
	assert.Equal(t, Apology, msg.Text)
	assert.Equal(t, 3, tr.Len())
}

func TestSendRejectsBlankMessage(t *testing.T) {
	fake := llm.NewFakeClient()
	tr := NewGreetingTranscript()

	_, err := New(fake, Options{}).Send(context.Background(), tr, "ctx", "  \n")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Equal(t, 1, tr.Len())
	assert.Empty(t, fake.Calls())
}

func TestTranscriptMessagesIsCopy(t *testing.T) {
	tr := NewGreetingTranscript()
	msgs := tr.Messages()
	msgs[0].Text = "changed"
	assert.Equal(t, Greeting, tr.Messages()[0].Text)
}
