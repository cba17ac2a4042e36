package workflow

import (
	"math"

	"github.com/spec-kit/support-workflow/internal/domain"
)

const (
	// defaultBaseScore applies when no evaluation result and no KB results
	// are usable.
	defaultBaseScore = 60
	// defaultRelevance stands in for KB relevance when no results exist.
	defaultRelevance = 0.6
)

// solutionScore computes the deterministic decision score. Inputs are the raw
// solution-evaluation result, the retrieved KB articles, the ticket priority,
// and the parsed sentiment. The result is always in [0, 100].
func solutionScore(eval any, kb []domain.KBArticle, priority domain.Priority, sentiment domain.Sentiment) int {
	base, ok := baseScore(eval)
	if !ok {
		if len(kb) > 0 {
			base = int(math.Round(maxRelevance(kb) * 100))
		} else {
			base = defaultBaseScore
		}
	}

	base += int(math.Round(maxRelevance(kb) * 10))

	if priority == domain.PriorityHigh || priority == domain.PriorityCritical {
		base -= 10
	}
	if sentiment == domain.SentimentNegative {
		base -= 5
	}

	if base < 0 {
		return 0
	}
	if base > 100 {
		return 100
	}
	return base
}

// baseScore extracts a usable base score from an evaluation result. The
// capability may return an integer, a fraction in [0,1] (scaled by 100), or a
// map carrying a "score" entry; anything else is unusable.
func baseScore(eval any) (int, bool) {
	switch v := eval.(type) {
	case int:
		return v, true
	case float64:
		if v >= 0 && v <= 1 {
			return int(math.Round(v * 100)), true
		}
		return int(math.Round(v)), true
	case map[string]any:
		inner, ok := v["score"]
		if !ok {
			return 0, false
		}
		return baseScore(inner)
	default:
		return 0, false
	}
}

func maxRelevance(kb []domain.KBArticle) float64 {
	if len(kb) == 0 {
		return defaultRelevance
	}
	best := 0.0
	for _, article := range kb {
		if article.Relevance > best {
			best = article.Relevance
		}
	}
	return best
}

// shouldEscalate is the branch predicate after DECIDE: it selects solely on
// the escalation flag, evaluated once per run.
func shouldEscalate(st domain.TicketState) bool {
	return st.EscalationRequired
}
