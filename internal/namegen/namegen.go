// Package namegen turns a finished analysis into a proposed filename.
// The actual move/rename and collision avoidance belong to the caller.
package namegen

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var reUnsafe = regexp.MustCompile(`[^A-Za-z0-9&'\-]+`)

const componentMaxLen = 60

// Proposal inputs: the extracted fields plus the original path (for the
// extension) and the file's modification time, which stands in for the
// date when the text carried none.
type Input struct {
	ClientName string
	Date       string // YYYY-MM-DD, may be empty
	DocType    string
	SourcePath string
	ModTime    time.Time
}

// Propose builds "YYYY-MM-DD_Client_DocType.ext". Missing fields fall
// back to "Unknown" (client) and "Document" (type); a missing date uses
// the file's modification time, or today when that is unknown too.
func Propose(in Input) string {
	date := in.Date
	if date == "" {
		mt := in.ModTime
		if mt.IsZero() {
			mt = time.Now()
		}
		date = mt.Format("2006-01-02")
	}

	client := Component(in.ClientName)
	if client == "" {
		client = "Unknown"
	}
	docType := Component(in.DocType)
	if docType == "" || docType == "Unclassified" {
		docType = "Document"
	}

	name := date + "_" + client + "_" + docType
	if ext := strings.ToLower(filepath.Ext(in.SourcePath)); ext != "" {
		name += ext
	}
	return name
}

// Component makes a string safe as a filename part: unsafe runs collapse
// to single hyphens, and overly long values are cut at a word boundary
// where possible.
func Component(s string) string {
	s = reUnsafe.ReplaceAllString(strings.TrimSpace(s), "-")
	s = strings.Trim(s, "-")
	if len(s) > componentMaxLen {
		cut := s[:componentMaxLen]
		if i := strings.LastIndexByte(cut, '-'); i > 0 {
			cut = cut[:i]
		}
		s = cut
	}
	return s
}
