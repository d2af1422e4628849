package generator

// Kind distinguishes the entries an operation produces.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// Outcome records what happened to a path during a run.
type Outcome int

const (
	// Created means the path did not exist and was written.
	Created Outcome = iota
	// SkippedExisting means the path existed and was left untouched.
	SkippedExisting
	// Overwritten means the path existed and a force run replaced it.
	Overwritten
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case SkippedExisting:
		return "skipped"
	case Overwritten:
		return "overwritten"
	default:
		return "unknown"
	}
}

// Written reports whether the outcome belongs in the creation log.
func (o Outcome) Written() bool {
	return o == Created || o == Overwritten
}

// WriteResult is the outcome of one operation. Path is slash separated and
// relative to the destination root.
type WriteResult struct {
	Path    string
	Kind    Kind
	Outcome Outcome
}

// Paths returns the paths of results whose outcome matches.
func Paths(results []WriteResult, outcome Outcome) []string {
	var paths []string
	for _, r := range results {
		if r.Outcome == outcome {
			paths = append(paths, r.Path)
		}
	}
	return paths
}
