package expand

import (
	"cmp"
	"context"
	"slices"

	"glslx/internal/marked"
	"glslx/internal/rules"
	"glslx/internal/slots"
	"glslx/internal/trace"
)

// removeRepeats applies the same-includes policy to the include marks that
// existed before splicing. Groups are processed in order of first
// appearance; within a group the earliest mark survives.
func (r *Resolver) removeRepeats(ctx context.Context, path string, doc *marked.Text[string], ids []slots.ID, log *parseLog) error {
	action := log.policy.SameIncludes.Value()
	if action == rules.SameIncludesIgnoreAll {
		return nil
	}

	for _, target := range distinctTargets(doc, ids) {
		same := slices.DeleteFunc(slices.Clone(ids), func(id slots.ID) bool {
			m, ok := doc.Mark(id)
			return !ok || m.Flag != target
		})
		if len(same) <= 1 {
			continue
		}
		slices.SortStableFunc(same, func(a, b slots.ID) int {
			ma, _ := doc.Mark(a)
			mb, _ := doc.Mark(b)
			return cmp.Compare(ma.Start, mb.Start)
		})

		switch action {
		case rules.SameIncludesDeleteRepeats:
			for _, id := range same[1:] {
				if err := doc.DeleteMarkAndContent(id); err != nil {
					return r.fail(TextExpansionFailure, path, err)
				}
			}
			r.metrics.RepeatsRemoved(len(same) - 1)
			trace.Point(ctx, trace.ScopeMark, "repeats", target)
			r.warn(log, Warning{
				Kind:     WarnMultipleSameIncludes,
				File:     path,
				Included: target,
				Times:    len(same),
				Action:   action,
			})
		case rules.SameIncludesThrowAnError:
			// зарезервировано: значение принимается, но не применяется
		}
	}
	return nil
}

func (r *Resolver) warn(log *parseLog, w Warning) {
	log.warn(w)
	r.metrics.Warning(w.Kind.String())
	if log.quiet || !log.policy.DisplayWarnings.Value() || r.reporter == nil {
		return
	}
	r.reporter.Report(w.Diagnostic(r.root))
}
