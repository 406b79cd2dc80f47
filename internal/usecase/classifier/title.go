package classifier

import (
	"regexp"
	"strconv"

	"wallpapermod/internal/domain"
)

// resPattern matches one resolution marker: an opening bracket, width
// digits, an x-like separator and height digits, each optionally padded
// with a single whitespace, then a closing bracket.
var resPattern = regexp.MustCompile(`[\[({]\s?([0-9]+)\s?[xX*×]\s?([0-9]+)\s?[\])}]`)

type markerSpan struct {
	start, end int
	res        domain.Resolution
}

// ParseTitle splits title into literal and resolution-marker tokens and
// returns, separately, the declared resolutions in title order and the
// subset of them acceptable against knownGood.
//
// Two passes: the first locates every marker span and decodes its
// dimensions, the second classifies each span's scale against the same
// knownGood snapshot. Classifying one marker never depends on another,
// and duplicate declared resolutions are kept per occurrence.
func ParseTitle(title string, knownGood domain.ResolutionSet) ([]domain.TitleToken, []domain.Resolution, domain.ResolutionSet) {
	spans := findMarkers(title)

	rezzes := make([]domain.Resolution, 0, len(spans))
	for _, sp := range spans {
		rezzes = append(rezzes, sp.res)
	}

	good := domain.NewResolutionSet()
	tokens := make([]domain.TitleToken, 0, 2*len(spans)+1)
	pos := 0
	for _, sp := range spans {
		if sp.start > pos {
			tokens = append(tokens, domain.TitleToken{Value: title[pos:sp.start]})
		}
		scale := classifyScale(sp.res, knownGood)
		if scale > 0 {
			// The original, unscaled pair is what counts as good;
			// scaling only decides acceptance.
			good.Add(sp.res)
		}
		tokens = append(tokens, domain.TitleToken{
			Value:  title[sp.start:sp.end],
			Marker: true,
			Width:  sp.res.Width,
			Height: sp.res.Height,
			Scale:  scale,
		})
		pos = sp.end
	}
	if pos < len(title) || len(spans) == 0 {
		tokens = append(tokens, domain.TitleToken{Value: title[pos:]})
	}

	return tokens, rezzes, good
}

func findMarkers(title string) []markerSpan {
	matches := resPattern.FindAllStringSubmatchIndex(title, -1)
	spans := make([]markerSpan, 0, len(matches))
	for _, m := range matches {
		// The pattern's capture groups are digit-only, so Atoi cannot fail.
		w, _ := strconv.Atoi(title[m[2]:m[3]])
		h, _ := strconv.Atoi(title[m[4]:m[5]])
		spans = append(spans, markerSpan{
			start: m[0],
			end:   m[1],
			res:   domain.Resolution{Width: w, Height: h},
		})
	}
	return spans
}

// classifyScale finds the smallest scale in 1..3 at which the declared
// width, floor-divided, matches a known-good resolution at the declared
// height. 0 means no scale is acceptable.
func classifyScale(r domain.Resolution, knownGood domain.ResolutionSet) int {
	for scale := 1; scale <= 3; scale++ {
		if knownGood.Contains(domain.Resolution{Width: r.Width / scale, Height: r.Height}) {
			return scale
		}
	}
	return 0
}
