// Package matchfile reads the .match performance annotation format: a
// list of score notes paired with played notes, plus info and meta
// lines. Only the items found in the Vienna 4x22 data are understood:
// snote-note pairs, insertion and deletion/no_played_note sides, info
// and meta.
package matchfile

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidLine     = errors.New("invalid match line")
	ErrUnknownModifier = errors.New("unknown note modifier")
	ErrInvalidNote     = errors.New("invalid note")
)

var (
	duoLine  = regexp.MustCompile(`^([a-z_]*)(\(.*\))?-([a-z_]*)(\(.*\))?\.`)
	soloLine = regexp.MustCompile(`^([a-z_]*)(\(.*\))?\.`)
	param    = regexp.MustCompile(`\[[^\]]*\]|[^,\[]+`)
)

// Param is one argument of an item: a plain value or a bracketed list.
type Param struct {
	Value  string
	List   []string
	IsList bool
}

type item struct {
	name   string
	params []Param
}

func parseParams(raw string) []Param {
	if raw == "" {
		return nil
	}
	raw = raw[1 : len(raw)-1]
	var res []Param
	for _, found := range param.FindAllString(raw, -1) {
		if strings.HasPrefix(found, "[") {
			inner := found[1 : len(found)-1]
			var list []string
			if inner != "" {
				list = strings.Split(inner, ",")
			}
			res = append(res, Param{List: list, IsList: true})
			continue
		}
		res = append(res, Param{Value: found})
	}
	return res
}

// parseLine returns one item for info/meta style lines and two for
// score-performance pairs.
func parseLine(line string) ([]item, error) {
	if m := duoLine.FindStringSubmatch(line); m != nil {
		return []item{
			{name: m[1], params: parseParams(m[2])},
			{name: m[3], params: parseParams(m[4])},
		}, nil
	}
	if m := soloLine.FindStringSubmatch(line); m != nil {
		return []item{{name: m[1], params: parseParams(m[2])}}, nil
	}
	return nil, errors.Wrapf(ErrInvalidLine, "%q", line)
}

type MatchFile struct {
	Info    map[string]string
	Meta    map[string][]Param
	Matches []Match
}

// Match is one line of the alignment. Either side is nil for insertions
// and deletions.
type Match struct {
	Score  *Note
	Played *Note
}

func ParseFile(path string) (*MatchFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't open match file %v", path)
	}
	defer f.Close()

	res, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Couldn't parse %v", path)
	}
	return res, nil
}

func Parse(r io.Reader) (*MatchFile, error) {
	res := &MatchFile{Info: map[string]string{}, Meta: map[string][]Param{}}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		items, err := parseLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}

		if len(items) == 1 {
			it := items[0]
			switch {
			case it.name == "info" && len(it.params) >= 2:
				res.Info[it.params[0].Value] = it.params[1].Value
			case it.name == "meta" && len(it.params) >= 1:
				res.Meta[it.params[0].Value] = it.params[1:]
			}
			continue
		}

		old := !res.hasVersion()
		score, err := noteFromItem(items[0], old)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}
		played, err := noteFromItem(items[1], old)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}
		res.Matches = append(res.Matches, Match{Score: score, Played: played})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Couldn't read match file")
	}
	return res, nil
}

func (m *MatchFile) hasVersion() bool {
	_, ok := m.Info["matchFileVersion"]
	return ok
}

func (m *MatchFile) ScoreNotes() []*Note {
	var res []*Note
	for _, match := range m.Matches {
		if match.Score != nil {
			res = append(res, match.Score)
		}
	}
	return res
}

func (m *MatchFile) PlayedNotes() []*Note {
	var res []*Note
	for _, match := range m.Matches {
		if match.Played != nil {
			res = append(res, match.Played)
		}
	}
	return res
}
