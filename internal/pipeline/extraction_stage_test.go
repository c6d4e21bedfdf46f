package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	"github.com/dicksarp09/AI-powered-mobile-app/constants"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/llm"
	"github.com/dicksarp09/AI-powered-mobile-app/internal/mocks"
)

const testModel = "qwen2.5:0.5b-q4"

func newStage(backend llm.GenerationBackend) *ExtractionStage {
	return NewExtractionStage(backend, ExtractionConfig{
		ModelPath:  testModel,
		Params:     llm.StructuredExtraction(),
		RetryDelay: time.Millisecond,
	}, nil)
}

func gen(text string) llm.Generation { return llm.Generation{Text: text, TokensGenerated: 10} }

func requireFallbackShape(t *testing.T, out ExtractionOutcome, input, code string) {
	t.Helper()
	require.False(t, out.Result.Validated)
	require.Empty(t, out.Result.Tasks)
	require.NotNil(t, out.Result.Tasks)
	require.Zero(t, out.Result.TaskCount)
	require.NotNil(t, out.Result.FallbackTranscript)
	require.Equal(t, input, *out.Result.FallbackTranscript)
	require.NotNil(t, out.Result.FallbackReason)
	require.True(t, strings.HasPrefix(*out.Result.FallbackReason, code), *out.Result.FallbackReason)
	require.Equal(t, code, out.Code)
}

func TestExtract_EmptyInputSkipsBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockGenerationBackend(ctrl)

	out := newStage(backend).Run(context.Background(), "   ", testModel, llm.Strict())
	requireFallbackShape(t, out, "   ", constants.ReasonEmptyInput)
	require.Zero(t, out.Attempts)
}

func TestExtract_FirstAttemptValid(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockGenerationBackend(ctrl)
	params := llm.StructuredExtraction().WithMaxTokens(256)

	gomock.InOrder(
		backend.EXPECT().Load(gomock.Any(), testModel).Return(nil),
		backend.EXPECT().Generate(gomock.Any(), gomock.Any(), params).
			DoAndReturn(func(_ context.Context, prompt string, _ llm.GenerationParameters) (llm.Generation, error) {
				require.True(t, strings.HasSuffix(prompt, "Call John tomorrow at 3pm.\n\nJSON:"))
				return gen(`Here: {"tasks":[{"title":"Call John","due_time":"tomorrow 3pm","priority":"High"}]}`), nil
			}),
		backend.EXPECT().Unload(gomock.Any()).Return(nil),
	)

	out := newStage(backend).Run(context.Background(), "Call John tomorrow at 3pm.", testModel, params)
	require.Empty(t, out.Code)
	require.Equal(t, 1, out.Attempts)
	require.True(t, out.Result.Validated)
	require.Equal(t, 1, out.Result.TaskCount)
	require.Equal(t, constants.PriorityHigh, out.Result.Tasks[0].Priority)
	require.Nil(t, out.Result.FallbackReason)
	require.JSONEq(t, `{"tasks":[{"title":"Call John","due_time":"tomorrow 3pm","priority":"high"}]}`, out.Raw)
}

func TestExtract_RetriesOnceWithReinforcedPrompt(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockGenerationBackend(ctrl)

	var prompts []string
	backend.EXPECT().Load(gomock.Any(), testModel).Return(nil)
	backend.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string, _ llm.GenerationParameters) (llm.Generation, error) {
			prompts = append(prompts, prompt)
			if len(prompts) == 1 {
				return gen("Sure, the tasks are: buy milk"), nil
			}
			return gen(`{"tasks":[{"title":"Buy milk","due_time":null}]}`), nil
		}).Times(2)
	backend.EXPECT().Unload(gomock.Any()).Return(nil)

	out := newStage(backend).Run(context.Background(), "buy milk", testModel, llm.Strict())
	require.Equal(t, 2, out.Attempts)
	require.True(t, out.Result.Validated)
	require.Equal(t, constants.PriorityMedium, out.Result.Tasks[0].Priority)
	require.NotContains(t, prompts[0], "valid JSON only")
	require.Contains(t, prompts[1], "valid JSON only")
}

func TestExtract_TwoMalformedAnswers(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockGenerationBackend(ctrl)

	backend.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil)
	backend.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(gen("not json"), nil).Times(2)
	backend.EXPECT().Unload(gomock.Any()).Return(nil)

	out := newStage(backend).Run(context.Background(), "buy milk", testModel, llm.Strict())
	requireFallbackShape(t, out, "buy milk", constants.ReasonJSONParseError)
	require.Equal(t, 2, out.Attempts)
	require.Equal(t, "not json", out.Raw)
}

func TestExtract_SchemaFailureDoesNotRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockGenerationBackend(ctrl)

	backend.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil)
	backend.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(gen(`{"items":[]}`), nil).Times(1)
	backend.EXPECT().Unload(gomock.Any()).Return(nil)

	out := newStage(backend).Run(context.Background(), "buy milk", testModel, llm.Strict())
	requireFallbackShape(t, out, "buy milk", constants.ReasonMissingTasksKey)
	require.Equal(t, 1, out.Attempts)
}

func TestExtract_LoadFailureStillUnloads(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockGenerationBackend(ctrl)

	backend.EXPECT().Load(gomock.Any(), testModel).Return(errors.New("model file corrupt"))
	backend.EXPECT().Unload(gomock.Any()).Return(nil)

	out := newStage(backend).Run(context.Background(), "buy milk", testModel, llm.Strict())
	requireFallbackShape(t, out, "buy milk", constants.ReasonModelLoadFailed)
	require.Contains(t, out.Result.Reason(), "model file corrupt")
}

func TestExtract_GenerationErrorIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockGenerationBackend(ctrl)

	backend.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil)
	backend.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(llm.Generation{}, errors.New("out of memory")).Times(1)
	backend.EXPECT().Unload(gomock.Any()).Return(errors.New("already unloaded"))

	out := newStage(backend).Run(context.Background(), "buy milk", testModel, llm.Strict())
	requireFallbackShape(t, out, "buy milk", constants.ReasonGenerationFailed)
	require.Equal(t, 1, out.Attempts)
}

func TestExtract_PanicIsContained(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockGenerationBackend(ctrl)

	backend.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil)
	backend.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, llm.GenerationParameters) (llm.Generation, error) {
			panic("native crash")
		})
	backend.EXPECT().Unload(gomock.Any()).Return(nil)

	stage := newStage(backend)
	out := stage.Run(context.Background(), "buy milk", testModel, llm.Strict())
	requireFallbackShape(t, out, "buy milk", constants.ReasonGenerationFailed)
	require.False(t, stage.Busy())
}

func TestExtract_NoTasksFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockGenerationBackend(ctrl)

	backend.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil)
	backend.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).Return(gen(`{"tasks":[]}`), nil)
	backend.EXPECT().Unload(gomock.Any()).Return(nil)

	out := newStage(backend).Run(context.Background(), "nice weather today", testModel, llm.Strict())
	require.True(t, out.Result.Validated)
	require.Empty(t, out.Result.Tasks)
	require.Equal(t, "nice weather today", *out.Result.FallbackTranscript)
	require.Equal(t, constants.ReasonNoTasks, out.Result.Reason())
}

// blockingBackend holds Generate until release is closed.
type blockingBackend struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingBackend) Load(context.Context, string) error { return nil }
func (b *blockingBackend) Unload(context.Context) error       { return nil }
func (b *blockingBackend) Generate(ctx context.Context, _ string, _ llm.GenerationParameters) (llm.Generation, error) {
	close(b.entered)
	<-b.release
	return gen(`{"tasks":[{"title":"Buy milk"}]}`), nil
}

func TestExtract_RejectsConcurrentCall(t *testing.T) {
	backend := &blockingBackend{entered: make(chan struct{}), release: make(chan struct{})}
	stage := newStage(backend)

	var first ExtractionOutcome
	var g errgroup.Group
	g.Go(func() error {
		first = stage.Run(context.Background(), "buy milk", testModel, llm.Strict())
		return nil
	})

	<-backend.entered
	require.True(t, stage.Busy())
	second := stage.Run(context.Background(), "walk dog", testModel, llm.Strict())
	requireFallbackShape(t, second, "walk dog", constants.ReasonExtractionBusy)

	close(backend.release)
	require.NoError(t, g.Wait())
	require.True(t, first.Result.Validated)
	require.False(t, stage.Busy())
}

func TestExtract_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockGenerationBackend(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	backend.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil)
	backend.EXPECT().Unload(gomock.Any()).Return(nil)

	out := newStage(backend).Run(ctx, "buy milk", testModel, llm.Strict())
	requireFallbackShape(t, out, "buy milk", constants.ReasonCanceled)
	require.Zero(t, out.Attempts)
}

func TestExtract_UsesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockGenerationBackend(ctrl)

	backend.EXPECT().Load(gomock.Any(), testModel).Return(nil)
	backend.EXPECT().Generate(gomock.Any(), gomock.Any(), llm.StructuredExtraction()).Return(gen(`{"tasks":[{"title":"x"}]}`), nil)
	backend.EXPECT().Unload(gomock.Any()).Return(nil)

	res := newStage(backend).Extract(context.Background(), "x")
	require.True(t, res.Validated)
}
