package match

// KeywordAnalysis is the present/missing partition of the job keyword
// set against a resume. Present and missing are disjoint and together
// span exactly the job keywords, both ordered by the job set's
// descending weight.
type KeywordAnalysis struct {
	Present         []string `json:"present_keywords"`
	Missing         []string `json:"missing_keywords"`
	MatchPercentage float64  `json:"match_percentage"`
}

// AnalyzeKeywords compares the resume keywords against the job
// keywords. A job term counts as present when its Porter stem equals the
// stem of any resume term, so morphological variants ("training" vs
// "trained") match. An empty job keyword set is trivially satisfied:
// both sequences are empty and the percentage is 100.
func AnalyzeKeywords(resumeKeywords, jobKeywords KeywordSet) KeywordAnalysis {
	if len(jobKeywords) == 0 {
		return KeywordAnalysis{Present: []string{}, Missing: []string{}, MatchPercentage: 100}
	}
	resumeStems := make(map[string]struct{}, len(resumeKeywords))
	for _, kw := range resumeKeywords {
		resumeStems[stemTerm(kw.Term)] = struct{}{}
	}
	present := make([]string, 0, len(jobKeywords))
	missing := make([]string, 0, len(jobKeywords))
	for _, kw := range jobKeywords {
		if _, ok := resumeStems[stemTerm(kw.Term)]; ok {
			present = append(present, kw.Term)
		} else {
			missing = append(missing, kw.Term)
		}
	}
	pct := 100 * float64(len(present)) / float64(len(jobKeywords))
	return KeywordAnalysis{Present: present, Missing: missing, MatchPercentage: pct}
}
