// Package metrics names the evaluation metrics found in a results file and
// provides the small statistics helpers the reports are built on.
package metrics

import "strings"

// Metric column names as they appear in the results file header.
const (
	Precision = "Precision"
	Recall    = "Recall"
	F1Score   = "F1-score"
	AUC       = "Area Under ROC (AUC)"
	Kappa     = "Kappa"
	Accuracy  = "Accuracy"
	TPR       = "True Positive Rate (TPR)"
	FPR       = "False Positive Rate (FPR)"
	TNR       = "True Negative Rate (TNR)"
	FNR       = "False Negative Rate (FNR)"
	NPofB20   = "NPofB20"
)

// Identifier columns every results file carries.
const (
	ModelColumn            = "Model"
	FeatureSelectionColumn = "Feature Selection"
)

// All lists the metrics that get an individual box plot, in render order.
var All = []string{
	Precision,
	Recall,
	F1Score,
	AUC,
	Kappa,
	Accuracy,
	TPR,
	FPR,
	TNR,
	FNR,
	NPofB20,
}

// Main is the subset used by the grid and the mean bar chart. The position of
// a metric in this list fixes its colour in every aggregate view.
var Main = []string{
	Precision,
	Recall,
	F1Score,
	AUC,
	Kappa,
	NPofB20,
}

// LowerIsBetter reports whether a smaller value of metric is the better
// result. Only the error rates qualify.
func LowerIsBetter(metric string) bool {
	return metric == FPR || metric == FNR
}

// RequiredColumns returns the header names a results file must contain.
func RequiredColumns() []string {
	cols := make([]string, 0, len(All)+2)
	cols = append(cols, ModelColumn, FeatureSelectionColumn)
	return append(cols, All...)
}

// FileSlug turns a metric name into the stem used for its chart file:
// lower-cased, spaces replaced with underscores, parentheses dropped.
//
//	"Area Under ROC (AUC)" -> "area_under_roc_auc"
func FileSlug(metric string) string {
	s := strings.ToLower(metric)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "(", "")
	return strings.ReplaceAll(s, ")", "")
}

// IndexOf returns the position of metric in list, or -1.
func IndexOf(list []string, metric string) int {
	for i, m := range list {
		if m == metric {
			return i
		}
	}
	return -1
}
