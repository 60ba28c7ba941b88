package source

import (
	"context"
	"errors"
	"testing"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// stubStrategy returns a fixed result and counts invocations.
type stubStrategy struct {
	name   string
	source model.SourceKind
	result Result
	calls  int
}

func (s *stubStrategy) Name() string             { return s.name }
func (s *stubStrategy) Source() model.SourceKind { return s.source }
func (s *stubStrategy) Extract(_ context.Context, _ model.VideoMetadata) Result {
	s.calls++
	return s.result
}

// stubTips records whether tips mining ran.
type stubTips struct {
	tips  []string
	err   error
	calls int
}

func (s *stubTips) Tips(_ context.Context, _, _ string) ([]string, error) {
	s.calls++
	return s.tips, s.err
}

func testRecipe(name string) *model.Recipe {
	return &model.Recipe{Name: name}
}

func TestResolverFirstSuccessWins(t *testing.T) {
	t.Parallel()

	webpage := &stubStrategy{name: "webpage", source: model.SourceWebpage, result: Succeeded(testRecipe("Scraped"))}
	ai := &stubStrategy{name: "ai", source: model.SourceAIExtraction, result: Succeeded(testRecipe("AI"))}
	resolver := NewResolver([]Strategy{webpage, ai})

	result, err := resolver.Resolve(context.Background(), model.VideoMetadata{ID: "vid"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Source != model.SourceWebpage {
		t.Errorf("source = %q, expected webpage", result.Source)
	}
	if result.Recipe.Name != "Scraped" {
		t.Errorf("recipe = %q", result.Recipe.Name)
	}
	if result.Recipe.Source != model.SourceWebpage {
		t.Errorf("recipe source = %q, expected webpage", result.Recipe.Source)
	}
	if ai.calls != 0 {
		t.Errorf("ai tier called %d times, expected 0 after an earlier success", ai.calls)
	}
}

func TestResolverSkipAdvances(t *testing.T) {
	t.Parallel()

	webpage := &stubStrategy{name: "webpage", source: model.SourceWebpage, result: Skipped(errors.New("no link"))}
	description := &stubStrategy{name: "description", source: model.SourceDescription, result: Skipped(errors.New("no recipe"))}
	ai := &stubStrategy{name: "ai", source: model.SourceAIExtraction, result: Succeeded(testRecipe("AI"))}
	resolver := NewResolver([]Strategy{webpage, description, ai})

	result, err := resolver.Resolve(context.Background(), model.VideoMetadata{ID: "vid"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Source != model.SourceAIExtraction {
		t.Errorf("source = %q, expected ai_extraction", result.Source)
	}
	if webpage.calls != 1 || description.calls != 1 || ai.calls != 1 {
		t.Errorf("calls = %d/%d/%d, expected each tier tried once",
			webpage.calls, description.calls, ai.calls)
	}
}

func TestResolverHardErrorStops(t *testing.T) {
	t.Parallel()

	hardErr := errors.New("model unreachable")
	ai := &stubStrategy{name: "ai", source: model.SourceAIExtraction, result: Failed(hardErr)}
	after := &stubStrategy{name: "after", source: model.SourceWebpage, result: Succeeded(testRecipe("x"))}
	resolver := NewResolver([]Strategy{ai, after})

	_, err := resolver.Resolve(context.Background(), model.VideoMetadata{ID: "vid"})
	if !errors.Is(err, hardErr) {
		t.Errorf("error = %v, expected the hard failure", err)
	}
	if after.calls != 0 {
		t.Error("strategies after a hard error must not run")
	}
}

func TestResolverAllSkipped(t *testing.T) {
	t.Parallel()

	skip := &stubStrategy{name: "webpage", source: model.SourceWebpage, result: Skipped(errors.New("miss"))}
	resolver := NewResolver([]Strategy{skip})

	_, err := resolver.Resolve(context.Background(), model.VideoMetadata{ID: "vid"})
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("error = %v, expected ErrNoSource", err)
	}
}

func TestResolverTips(t *testing.T) {
	t.Parallel()

	video := model.VideoMetadata{ID: "vid", Transcript: "today we cook"}

	t.Run("attached after webpage success", func(t *testing.T) {
		t.Parallel()
		webpage := &stubStrategy{name: "webpage", source: model.SourceWebpage, result: Succeeded(testRecipe("Scraped"))}
		miner := &stubTips{tips: []string{"salt the water"}}
		resolver := NewResolver([]Strategy{webpage}, WithTips(miner))

		result, err := resolver.Resolve(context.Background(), video)
		if err != nil {
			t.Fatal(err)
		}
		if len(result.Recipe.Tips) != 1 {
			t.Errorf("tips = %v", result.Recipe.Tips)
		}
	})

	t.Run("skipped for ai source", func(t *testing.T) {
		t.Parallel()
		ai := &stubStrategy{name: "ai", source: model.SourceAIExtraction, result: Succeeded(testRecipe("AI"))}
		miner := &stubTips{tips: []string{"tip"}}
		resolver := NewResolver([]Strategy{ai}, WithTips(miner))

		if _, err := resolver.Resolve(context.Background(), video); err != nil {
			t.Fatal(err)
		}
		if miner.calls != 0 {
			t.Error("tips must not run for the ai tier")
		}
	})

	t.Run("skipped without a transcript", func(t *testing.T) {
		t.Parallel()
		webpage := &stubStrategy{name: "webpage", source: model.SourceWebpage, result: Succeeded(testRecipe("Scraped"))}
		miner := &stubTips{tips: []string{"tip"}}
		resolver := NewResolver([]Strategy{webpage}, WithTips(miner))

		if _, err := resolver.Resolve(context.Background(), model.VideoMetadata{ID: "vid"}); err != nil {
			t.Fatal(err)
		}
		if miner.calls != 0 {
			t.Error("tips must not run without a transcript")
		}
	})

	t.Run("failure never fails resolution", func(t *testing.T) {
		t.Parallel()
		webpage := &stubStrategy{name: "webpage", source: model.SourceWebpage, result: Succeeded(testRecipe("Scraped"))}
		miner := &stubTips{err: errors.New("model down")}
		resolver := NewResolver([]Strategy{webpage}, WithTips(miner))

		result, err := resolver.Resolve(context.Background(), video)
		if err != nil {
			t.Fatal(err)
		}
		if len(result.Recipe.Tips) != 0 {
			t.Errorf("tips = %v, expected none", result.Recipe.Tips)
		}
	})
}
