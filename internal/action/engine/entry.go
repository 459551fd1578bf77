package engine

// Entry titles produced by the engine and by front-ends.
const (
	TitleValue      = "Value"
	TitleOutput     = "Output"
	TitleThrowable  = "Throwable"
	TitleStatus     = "Status"
	TitleValidation = "Validation"
)

// Languages used to highlight entry bodies.
const (
	LanguageCode  = "go"
	LanguagePlain = "plaintext"
)

// Entry is one titled block of an invocation result.
type Entry struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Language string `json:"language"`
}

// StatusDone is the entry front-ends show when an invocation produced nothing.
func StatusDone() Entry {
	return Entry{Title: TitleStatus, Body: "Done", Language: LanguagePlain}
}

// Validation builds an entry explaining why an action did not run.
func Validation(reason string) Entry {
	return Entry{Title: TitleValidation, Body: reason, Language: LanguagePlain}
}

// OrDone returns entries, or a single StatusDone entry when there are none.
func OrDone(entries []Entry) []Entry {
	if len(entries) == 0 {
		return []Entry{StatusDone()}
	}
	return entries
}
