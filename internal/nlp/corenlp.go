package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	errx "github.com/tavolo-poc/waiterbot/internal/core/error"
	logx "github.com/tavolo-poc/waiterbot/pkg/logger"
)

// Parser turns a raw utterance into a dependency tree. Implementations own
// the tokens they return; the dialogue core only reads them.
type Parser interface {
	Parse(ctx context.Context, text string) (*Tree, error)
}

// CoreNLPConfig configures the Stanford CoreNLP HTTP client.
type CoreNLPConfig struct {
	URL            string `envconfig:"CORENLP_URL" default:"http://localhost:9000"`
	TimeoutSeconds int    `envconfig:"CORENLP_TIMEOUT_SECONDS" default:"10"`
}

// CoreNLP is a Parser backed by a CoreNLP server running the
// tokenize,pos,lemma,depparse pipeline.
type CoreNLP struct {
	endpoint string
	hc       *http.Client
}

func NewCoreNLP(cfg CoreNLPConfig) *CoreNLP {
	props := `{"annotators":"tokenize,ssplit,pos,lemma,depparse","outputFormat":"json"}`
	return &CoreNLP{
		endpoint: strings.TrimRight(cfg.URL, "/") + "/?properties=" + url.QueryEscape(props),
		hc:       &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

type corenlpToken struct {
	Index int    `json:"index"`
	Word  string `json:"word"`
	Lemma string `json:"lemma"`
	POS   string `json:"pos"`
}

type corenlpDependency struct {
	Dep       string `json:"dep"`
	Governor  int    `json:"governor"`
	Dependent int    `json:"dependent"`
}

type corenlpSentence struct {
	Tokens            []corenlpToken      `json:"tokens"`
	BasicDependencies []corenlpDependency `json:"basicDependencies"`
}

type corenlpDocument struct {
	Sentences []corenlpSentence `json:"sentences"`
}

// relationAliases maps Universal Dependencies labels emitted by CoreNLP to
// the internal inventory the trigger tables are written in.
var relationAliases = map[string]string{
	"ROOT":         RelRoot,
	"obj":          RelDirectObject,
	"obl":          RelPrepObject,
	"nmod":         RelPrepObject,
	"compound:prt": RelParticle,
	"cc":           RelConjunct,
	"discourse":    RelInterjection,
}

func normalizeRelation(rel string) string {
	if mapped, ok := relationAliases[rel]; ok {
		return mapped
	}
	return rel
}

func (p *CoreNLP) Parse(ctx context.Context, text string) (*Tree, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("build corenlp request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := p.hc.Do(req)
	if err != nil {
		logx.Error().Err(err).Str("component", "corenlp").Msg("request failed")
		return nil, errx.New(errx.ErrServiceUnavailable, http.StatusBadGateway, "parser unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logx.Error().Str("component", "corenlp").Int("status", resp.StatusCode).Msg("unexpected status")
		return nil, errx.New(errx.ErrServiceUnavailable, resp.StatusCode, "parser returned an error")
	}

	var doc corenlpDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode corenlp response: %w", err)
	}
	if len(doc.Sentences) == 0 || len(doc.Sentences[0].Tokens) == 0 {
		return nil, errx.New(errx.ErrUnintelligible, http.StatusUnprocessableEntity, "empty parse")
	}

	// Only the first sentence matters, the bot is strictly turn based.
	return buildTree(doc.Sentences[0]), nil
}

func buildTree(sent corenlpSentence) *Tree {
	tokens := make([]*Token, len(sent.Tokens))
	for i, t := range sent.Tokens {
		tokens[i] = &Token{
			Text:  strings.ToLower(t.Word),
			Lemma: strings.ToLower(t.Lemma),
			POS:   t.POS,
		}
	}

	// Children in sentence order keeps the breadth-first extraction
	// deterministic.
	deps := append([]corenlpDependency{}, sent.BasicDependencies...)
	sort.Slice(deps, func(i, j int) bool { return deps[i].Dependent < deps[j].Dependent })

	tree := &Tree{Tokens: tokens}
	for _, d := range deps {
		if d.Dependent < 1 || d.Dependent > len(tokens) {
			continue
		}
		tok := tokens[d.Dependent-1]
		tok.Relation = normalizeRelation(d.Dep)
		if d.Governor == 0 {
			tok.Relation = RelRoot
			tree.Root = tok
			continue
		}
		if d.Governor >= 1 && d.Governor <= len(tokens) {
			parent := tokens[d.Governor-1]
			parent.Children = append(parent.Children, tok)
		}
	}
	return tree
}
