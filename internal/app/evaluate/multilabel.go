package evaluate

import "sort"

// Averaged bundles precision, recall and F1 under one averaging scheme.
type Averaged struct {
	Precision float64
	Recall    float64
	F1        float64
}

// LabelMetrics holds per-label counts and derived scores.
type LabelMetrics struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// MultiLabelReport aggregates multi-label classification metrics over all
// rows of one file.
type MultiLabelReport struct {
	Micro      Averaged
	Macro      Averaged
	Weighted   Averaged
	PerLabel   []LabelMetrics
	AtLeastOne int
	Samples    int
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func f1(p, r float64) float64 {
	return safeDiv(2*p*r, p+r)
}

// EvaluateMultiLabel computes micro-, macro- and support-weighted
// precision/recall/F1 over label sets, plus the share of rows with at least
// one correct label. The label universe is the union of gold and predicted
// labels.
func EvaluateMultiLabel(gold, pred [][]string) MultiLabelReport {
	type counts struct{ tp, fp, fn, support int }
	perLabel := make(map[string]*counts)
	labelFor := func(l string) *counts {
		c, ok := perLabel[l]
		if !ok {
			c = &counts{}
			perLabel[l] = c
		}
		return c
	}

	report := MultiLabelReport{Samples: len(gold)}
	for i := range gold {
		goldSet := make(map[string]bool, len(gold[i]))
		for _, l := range gold[i] {
			goldSet[l] = true
		}
		predSet := make(map[string]bool)
		for _, l := range pred[i] {
			predSet[l] = true
		}

		hit := false
		for l := range goldSet {
			c := labelFor(l)
			c.support++
			if predSet[l] {
				c.tp++
				hit = true
			} else {
				c.fn++
			}
		}
		for l := range predSet {
			if !goldSet[l] {
				labelFor(l).fp++
			}
		}
		if hit {
			report.AtLeastOne++
		}
	}

	labels := make([]string, 0, len(perLabel))
	for l := range perLabel {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	var tpSum, fpSum, fnSum, supportSum int
	for _, l := range labels {
		c := perLabel[l]
		p := safeDiv(float64(c.tp), float64(c.tp+c.fp))
		r := safeDiv(float64(c.tp), float64(c.tp+c.fn))
		m := LabelMetrics{Label: l, Precision: p, Recall: r, F1: f1(p, r), Support: c.support}
		report.PerLabel = append(report.PerLabel, m)

		tpSum += c.tp
		fpSum += c.fp
		fnSum += c.fn
		supportSum += c.support

		report.Macro.Precision += p
		report.Macro.Recall += r
		report.Macro.F1 += m.F1

		w := float64(c.support)
		report.Weighted.Precision += w * p
		report.Weighted.Recall += w * r
		report.Weighted.F1 += w * m.F1
	}

	if n := float64(len(labels)); n > 0 {
		report.Macro.Precision /= n
		report.Macro.Recall /= n
		report.Macro.F1 /= n
	}
	if supportSum > 0 {
		report.Weighted.Precision /= float64(supportSum)
		report.Weighted.Recall /= float64(supportSum)
		report.Weighted.F1 /= float64(supportSum)
	}

	report.Micro.Precision = safeDiv(float64(tpSum), float64(tpSum+fpSum))
	report.Micro.Recall = safeDiv(float64(tpSum), float64(tpSum+fnSum))
	report.Micro.F1 = f1(report.Micro.Precision, report.Micro.Recall)

	return report
}
