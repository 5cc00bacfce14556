package deal

import (
	"dealbench/internal/artifact"
	"dealbench/internal/link"
)

// ComputeSummary derives the per-deal rollup from the assembled
// artifacts and checkpoints.
func ComputeSummary(d *Deal) Summary {
	s := Summary{
		ArtifactCount:   len(d.Artifacts),
		CheckpointCount: len(d.Checkpoints),
		TypeCounts:      make(map[artifact.Type]int),
	}
	for _, cp := range d.Checkpoints {
		s.TaskCount += len(cp.Tasks)
	}

	var arts []artifact.Artifact
	for _, a := range d.Artifacts {
		arts = append(arts, a)
		s.TypeCounts[a.Type()]++
	}
	ordered := link.SortChronologically(arts)
	for _, a := range ordered {
		if t, ok := link.EffectiveDate(a); ok {
			s.FirstDate = t.Format("2006-01-02")
			break
		}
	}
	for i := len(ordered) - 1; i >= 0; i-- {
		if t, ok := link.EffectiveDate(ordered[i]); ok {
			s.LastDate = t.Format("2006-01-02")
			break
		}
	}
	return s
}
