package loader

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/askiada/go-almanac/pkg/almanac"
)

// textDocument is the grammar of the text format:
//
//	seeds: 79 14 55 13
//
//	seed-to-soil map:
//	50 98 2
//	52 50 48
type textDocument struct {
	Seeds  []int64      `parser:"( 'seeds' ':' @Number* )?"`
	Stages []*textStage `parser:"@@*"`
}

type textStage struct {
	Name  string      `parser:"@Ident 'map' ':'"`
	Rules []*textRule `parser:"@@*"`
}

type textRule struct {
	Destination int64 `parser:"@Number"`
	Source      int64 `parser:"@Number"`
	Length      int64 `parser:"@Number"`
}

var textLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	// stage names such as seed-to-soil
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_]*(?:-[A-Za-z0-9_]+)*`},
	{Name: "Number", Pattern: `-?\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var textParser = participle.MustBuild[textDocument](
	participle.Lexer(textLexer),
	participle.Elide("Whitespace", "Comment"),
)

// ParseText reads a document in the text format. name is only used in error positions.
func ParseText(name string, r io.Reader) (*Almanac, error) {
	doc, err := textParser.Parse(name, r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse almanac")
	}

	out := &Almanac{
		Seeds:  doc.Seeds,
		Stages: make([]StageDef, 0, len(doc.Stages)),
	}
	for _, stage := range doc.Stages {
		def := StageDef{
			Name:  stage.Name,
			Rules: make([]almanac.Rule, 0, len(stage.Rules)),
		}
		for _, rule := range stage.Rules {
			def.Rules = append(def.Rules, almanac.NewRule(rule.Destination, rule.Source, rule.Length))
		}
		out.Stages = append(out.Stages, def)
	}

	return out, nil
}
