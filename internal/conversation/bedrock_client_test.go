package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConverseAPI struct {
	out     *bedrockruntime.ConverseOutput
	err     error
	lastIn  *bedrockruntime.ConverseInput
	callCnt int
}

func (f *fakeConverseAPI) Converse(_ context.Context, params *bedrockruntime.ConverseInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	f.callCnt++
	f.lastIn = params
	return f.out, f.err
}

func textOutput(parts ...string) *bedrockruntime.ConverseOutput {
	blocks := make([]brtypes.ContentBlock, 0, len(parts))
	for _, p := range parts {
		blocks = append(blocks, &brtypes.ContentBlockMemberText{Value: p})
	}
	return &bedrockruntime.ConverseOutput{
		Output: &brtypes.ConverseOutputMemberMessage{Value: brtypes.Message{
			Role:    brtypes.ConversationRoleAssistant,
			Content: blocks,
		}},
		StopReason: brtypes.StopReasonEndTurn,
		Usage: &brtypes.TokenUsage{
			InputTokens:  aws.Int32(40),
			OutputTokens: aws.Int32(12),
			TotalTokens:  aws.Int32(52),
		},
	}
}

func TestNewBedrockLLMClientValidates(t *testing.T) {
	_, err := NewBedrockLLMClient(nil, "model")
	assert.Error(t, err)
	_, err = NewBedrockLLMClient(&fakeConverseAPI{}, "  ")
	assert.Error(t, err)
}

func TestBedrockLLMClientComplete(t *testing.T) {
	api := &fakeConverseAPI{out: textOutput("Main yahan hun. ", "Batao kya hua?")}
	client, err := NewBedrockLLMClient(api, "anthropic.test-model")
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), LLMRequest{Prompt: "User: hi\n\nSaathi:", MaxTokens: 256, Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, "Main yahan hun. Batao kya hua?", resp.Text)
	assert.Equal(t, "bedrock", resp.Provider)
	assert.Equal(t, string(brtypes.StopReasonEndTurn), resp.StopReason)
	assert.Equal(t, TokenUsage{InputTokens: 40, OutputTokens: 12, TotalTokens: 52}, resp.Usage)

	require.NotNil(t, api.lastIn)
	assert.Equal(t, "anthropic.test-model", aws.ToString(api.lastIn.ModelId))
	require.Len(t, api.lastIn.Messages, 1)
	assert.Equal(t, brtypes.ConversationRoleUser, api.lastIn.Messages[0].Role)
	require.NotNil(t, api.lastIn.InferenceConfig)
	assert.Equal(t, int32(256), aws.ToInt32(api.lastIn.InferenceConfig.MaxTokens))
	assert.InDelta(t, 0.7, aws.ToFloat32(api.lastIn.InferenceConfig.Temperature), 0.0001)
}

func TestBedrockLLMClientOmitsInferenceConfigWhenUnset(t *testing.T) {
	api := &fakeConverseAPI{out: textOutput("ok")}
	client, err := NewBedrockLLMClient(api, "m")
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), LLMRequest{Prompt: "hi", Temperature: -1})
	require.NoError(t, err)
	assert.Nil(t, api.lastIn.InferenceConfig)
}

func TestBedrockLLMClientErrors(t *testing.T) {
	client, err := NewBedrockLLMClient(&fakeConverseAPI{err: errors.New("throttled")}, "m")
	require.NoError(t, err)
	_, err = client.Complete(context.Background(), LLMRequest{Prompt: "hi"})
	assert.EqualError(t, err, "throttled")

	_, err = client.Complete(context.Background(), LLMRequest{Prompt: "  "})
	assert.Error(t, err)

	empty, err := NewBedrockLLMClient(&fakeConverseAPI{out: &bedrockruntime.ConverseOutput{}}, "m")
	require.NoError(t, err)
	_, err = empty.Complete(context.Background(), LLMRequest{Prompt: "hi"})
	assert.Error(t, err)
}
