package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/kayz/sonar/internal/llm"
	"github.com/kayz/sonar/internal/logger"
)

// factCheckFailureMarkers flag a verification output that refused or failed;
// the uncorrected summary is kept in that case.
var factCheckFailureMarkers = []string{"오류", "정보 확인 불가", "수정 불가"}

const (
	noEvidencePlaceholder = "(검색된 본문 없음)"
	noHistoryPlaceholder  = "(이전 대화 없음)"
)

// FactCheck verifies the summary against the retrieval evidence and recent
// conversation history. Evidence is capped so the verification prompt stays
// bounded. Rejected or failed verification keeps the summary unchanged.
func (p *Pipeline) FactCheck(ctx context.Context, summary, evidence string) string {
	evidenceBody := strings.TrimSpace(evidence)
	if evidenceBody == "" {
		evidenceBody = noEvidencePlaceholder
	} else if runes := []rune(evidenceBody); len(runes) > p.cfg.EvidenceLimit {
		evidenceBody = string(runes[:p.cfg.EvidenceLimit])
	}

	historyText := noHistoryPlaceholder
	if recent := p.memory.Last(p.cfg.HistoryWindow); len(recent) > 0 {
		var lines []string
		for _, entry := range recent {
			lines = append(lines, fmt.Sprintf("%s: %s", entry.Role, entry.Content))
		}
		historyText = strings.Join(lines, "\n")
	}

	combined := fmt.Sprintf("[검색된 본문]\n%s\n\n[최근 대화 기록]\n%s", evidenceBody, historyText)

	checked, err := llm.Complete(ctx, p.provider, fmt.Sprintf(factCheckPrompt, summary, combined))
	if err != nil {
		logger.Error("[Pipeline] fact check failed: %v", err)
		return summary
	}

	checked = strings.TrimSpace(checked)
	if checked == "" || containsAny(checked, factCheckFailureMarkers) {
		logger.Warn("[Pipeline] fact check rejected, keeping summary")
		return summary
	}
	logger.Info("[Pipeline] fact check done, length: %d", len(checked))
	return checked
}
