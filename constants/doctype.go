package constants

import (
	"strings"
)

type DocType string

const (
	Invoice       DocType = "Invoice"
	Receipt       DocType = "Receipt"
	Contract      DocType = "Contract"
	Report        DocType = "Report"
	Letter        DocType = "Letter"
	Memo          DocType = "Memo"
	Proposal      DocType = "Proposal"
	Statement     DocType = "Statement"
	PurchaseOrder DocType = "Purchase Order"
	Resume        DocType = "Resume"
	Unclassified  DocType = "Unclassified"
)

var allDocTypes = []DocType{
	Invoice,
	Receipt,
	Contract,
	Report,
	Letter,
	Memo,
	Proposal,
	Statement,
	PurchaseOrder,
	Resume,
}

func AsStringSlice() []string {
	result := make([]string, len(allDocTypes))
	for i, dt := range allDocTypes {
		result[i] = string(dt)
	}
	return result
}

func Canonicalize(input string) (DocType, bool) {
	if input == "" {
		return Unclassified, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]DocType{
		"bill":           Invoice,
		"tax invoice":    Invoice,
		"sales receipt":  Receipt,
		"agreement":      Contract,
		"msa":            Contract,
		"annual report":  Report,
		"quarterly":      Report,
		"correspondence": Letter,
		"memorandum":     Memo,
		"quote":          Proposal,
		"quotation":      Proposal,
		"rfp response":   Proposal,
		"bank statement": Statement,
		"po":             PurchaseOrder,
		"cv":             Resume,
		"curriculum":     Resume,
	}
	if dt, ok := synonyms[normalized]; ok {
		return dt, true
	}

	for _, dt := range allDocTypes {
		if strings.ToLower(string(dt)) == normalized {
			return dt, true
		}
	}
	return Unclassified, false
}
