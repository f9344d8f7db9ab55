package tui

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/framewm/internal/config"
)

type diffKind int

const (
	diffContext diffKind = iota
	diffRemoved
	diffAdded
	diffHunk // "@@ line N @@" separator
)

type diffLine struct {
	kind diffKind
	text string
}

// diffContextLines is how many unchanged lines surround each change.
const diffContextLines = 2

// computeDiffLines diffs the YAML renderings of two configs. It returns nil
// when they render identically.
func computeDiffLines(original, current *config.Config) []diffLine {
	if original == nil || current == nil {
		return nil
	}
	before, err := yamlLines(original)
	if err != nil {
		return nil
	}
	after, err := yamlLines(current)
	if err != nil {
		return nil
	}
	return hunks(editScript(before, after), diffContextLines)
}

func yamlLines(cfg *config.Config) ([]string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}

// edit is one step of an edit script. line is the 1-based position in the
// original text where the step applies.
type edit struct {
	diffLine
	line int
}

// editScript turns a into b with the fewest removals and additions, using
// the longest common subsequence of lines.
func editScript(a, b []string) []edit {
	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			switch {
			case a[i] == b[j]:
				lcs[i][j] = lcs[i+1][j+1] + 1
			case lcs[i+1][j] >= lcs[i][j+1]:
				lcs[i][j] = lcs[i+1][j]
			default:
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	script := make([]edit, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			script = append(script, edit{diffLine{diffContext, a[i]}, i + 1})
			i++
			j++
		case j == len(b) || (i < len(a) && lcs[i+1][j] >= lcs[i][j+1]):
			script = append(script, edit{diffLine{diffRemoved, a[i]}, i + 1})
			i++
		default:
			script = append(script, edit{diffLine{diffAdded, b[j]}, i + 1})
			j++
		}
	}
	return script
}

// hunks keeps every change plus ctx lines of context around it. Each run of
// kept lines starts with a hunk header naming its original line.
func hunks(script []edit, ctx int) []diffLine {
	keep := make([]bool, len(script))
	changed := false
	for i, e := range script {
		if e.kind == diffContext {
			continue
		}
		changed = true
		for k := max(0, i-ctx); k <= min(len(script)-1, i+ctx); k++ {
			keep[k] = true
		}
	}
	if !changed {
		return nil
	}

	var out []diffLine
	for i, e := range script {
		if !keep[i] {
			continue
		}
		if i == 0 || !keep[i-1] {
			out = append(out, diffLine{diffHunk, fmt.Sprintf("@@ line %d @@", e.line)})
		}
		out = append(out, e.diffLine)
	}
	return out
}

// countChanges returns the number of removed and added lines.
func countChanges(lines []diffLine) (removed, added int) {
	for _, l := range lines {
		switch l.kind {
		case diffRemoved:
			removed++
		case diffAdded:
			added++
		}
	}
	return removed, added
}

// cloneConfig deep-copies cfg through its YAML form, which is also what
// gets written to disk.
func cloneConfig(cfg *config.Config) *config.Config {
	if cfg == nil {
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil
	}
	clone := new(config.Config)
	if err := yaml.Unmarshal(data, clone); err != nil {
		return nil
	}
	return clone
}
