package parsers

import (
	"fmt"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/classify"
	"github.com/priya-raghavan/statement-parser/internal/common"
)

// MinSelectionConfidence is the acceptance floor under which no parser
// is selected.
const MinSelectionConfidence = 0.6

// registry holds one stateless parser per issuer.
var registry = map[constants.IssuerType]Parser{
	constants.IssuerHDFC:  hdfcParser{},
	constants.IssuerICICI: iciciParser{},
	constants.IssuerSBI:   sbiParser{},
	constants.IssuerAxis:  axisParser{},
	constants.IssuerAmex:  amexParser{},
}

// canParse backs every parser's CanParse with the shared issuer-marker
// score; acceptance uses the classification floor.
func canParse(issuer constants.IssuerType, text string) (bool, float64) {
	conf := classify.ScoreIssuer(issuer, text)
	return conf >= classify.MinConfidence, conf
}

// Select picks the parser for a document. A hinted issuer's parser is
// asked first and wins when it accepts the text; otherwise every
// registered parser is scanned in the fixed issuer order and the
// highest-confidence accepting one wins. No parser at or above the floor
// means the issuer is not supported.
func Select(text string, hint constants.IssuerType, minConfidence float64) (Parser, float64, error) {
	if minConfidence <= 0 {
		minConfidence = MinSelectionConfidence
	}

	if hint != "" && hint != constants.IssuerUnknown {
		if p, ok := registry[hint]; ok {
			if accepted, conf := p.CanParse(text); accepted {
				return p, conf, nil
			}
		}
	}

	var best Parser
	bestConf := 0.0
	for _, issuer := range constants.Issuers {
		p, ok := registry[issuer]
		if !ok {
			continue
		}
		accepted, conf := p.CanParse(text)
		if accepted && conf > bestConf {
			best, bestConf = p, conf
		}
	}
	if best == nil || bestConf < minConfidence {
		return nil, bestConf, common.NewAppError("ISSUER_NOT_SUPPORTED",
			fmt.Sprintf("no parser accepted the document (best confidence %.2f, floor %.2f)", bestConf, minConfidence),
			common.ErrIssuerNotSupported)
	}
	return best, bestConf, nil
}

// ForIssuer returns the parser without an acceptance gate, for callers
// that already resolved the issuer.
func ForIssuer(issuer constants.IssuerType) (Parser, error) {
	p, ok := registry[issuer]
	if !ok {
		return nil, common.IssuerNotSupportedError(string(issuer))
	}
	return p, nil
}

// Supported lists issuers with a registered parser, in stable order.
func Supported() []constants.IssuerType {
	out := make([]constants.IssuerType, 0, len(registry))
	for _, issuer := range constants.Issuers {
		if _, ok := registry[issuer]; ok {
			out = append(out, issuer)
		}
	}
	return out
}
