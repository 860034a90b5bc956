package analyzer

import "github.com/amara-obi/docsorter/internal/entity"

// Merge reconciles the heuristic first pass with an AI result into one
// hybrid analysis. Per field, the strictly higher confidence wins; ties
// keep the regex value, which is already validated and cost nothing.
// Snippets prefer the AI's evidence, the title stays heuristic-only, and
// the overall confidence is recomputed from whatever was kept. Neither
// input is mutated. A nil AI result passes the regex analysis through
// unchanged.
func Merge(regex entity.Analysis, ai *entity.Analysis) entity.Analysis {
	if ai == nil {
		return regex
	}

	out := regex
	out.Source = entity.SourceHybrid

	if ai.ClientConfidence > regex.ClientConfidence {
		out.ClientName = ai.ClientName
		out.ClientConfidence = ai.ClientConfidence
	}
	if ai.DateConfidence > regex.DateConfidence {
		out.Date = ai.Date
		out.DateConfidence = ai.DateConfidence
	}
	if ai.DocTypeConfidence > regex.DocTypeConfidence {
		out.DocType = ai.DocType
		out.DocTypeConfidence = ai.DocTypeConfidence
	}
	if len(ai.Snippets) > 0 {
		out.Snippets = ai.Snippets
	}
	out.RecomputeOverall()
	return out
}
