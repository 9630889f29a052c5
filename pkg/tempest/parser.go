package tempest

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// ParseError reports that the input did not match the expected
// subunit2html result-page structure.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse report: " + e.Reason
}

var tracebackRe = regexp.MustCompile(`Traceback \(most recent call last\):`)

// Parse extracts test results from a subunit2html-style HTML page.
// Results come back in document order. A document with no recognizable
// result markers (suite rows, test-case rows, or the totals row) is a
// *ParseError, never an empty report.
func Parse(data []byte) (*Report, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader is Parse over an io.Reader.
func ParseReader(r io.Reader) (*Report, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	p := &parser{popups: make(map[string]string)}
	p.collectPopups(doc)
	if err := p.walk(doc); err != nil {
		return nil, err
	}

	if len(p.report.Results) == 0 && !p.sawMarker {
		return nil, &ParseError{Reason: "no test result markers found in document"}
	}

	p.tally()
	return &p.report, nil
}

type parser struct {
	report    Report
	popups    map[string]string // popup div id -> <pre> text
	suite     string            // testname of the most recent suite row
	sawMarker bool
	totals    []int // count, pass, fail, error, skip from the totals row
}

// collectPopups indexes every popup_window div by id before the row walk,
// since some reports place popups after the rows that reference them.
func (p *parser) collectPopups(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "div" && hasClass(n, "popup_window") {
		if id := attr(n, "id"); id != "" {
			if pre := findElement(n, "pre"); pre != nil {
				p.popups[id] = nodeText(pre)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.collectPopups(c)
	}
}

func (p *parser) walk(n *html.Node) error {
	if n.Type == html.ElementNode && n.Data == "tr" {
		if err := p.row(n); err != nil {
			return err
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := p.walk(c); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) row(tr *html.Node) error {
	if attr(tr, "id") == "total_row" {
		p.sawMarker = true
		p.totals = rowNumbers(tr)
		return nil
	}

	// Suite rows carry the class-level test name that prefixes the
	// per-test case names below them.
	for _, cls := range []string{"passClass", "failClass", "errorClass", "skipClass"} {
		if hasClass(tr, cls) {
			p.sawMarker = true
			if cell := findElementClass(tr, "td", "testname"); cell != nil {
				p.suite = strings.TrimSpace(nodeText(cell))
			}
			return nil
		}
	}

	caseDiv := findElementClass(tr, "div", "testcase")
	if caseDiv == nil {
		return nil
	}
	p.sawMarker = true

	caseName := strings.TrimSpace(nodeText(caseDiv))
	outcome, popupID, ok := classify(tr)
	if !ok {
		ident := attr(tr, "id")
		if ident == "" {
			ident = caseName
		}
		return &ParseError{Reason: fmt.Sprintf("unclassifiable test row %q", ident)}
	}

	result := TestResult{
		Name:    p.fullName(caseName, popupID),
		Outcome: outcome,
	}
	if outcome == OutcomeFail || outcome == OutcomeError {
		result.Detail = extractTraceback(p.popups[popupID])
	}
	p.report.Results = append(p.report.Results, result)
	return nil
}

// classify determines a test row's outcome. The popup link text wins when
// present; otherwise the case cell class, then a bare outcome token in a
// cell. Returns ok=false when none of those identify the row.
func classify(tr *html.Node) (Outcome, string, bool) {
	if link := findElementClass(tr, "a", "popup_link"); link != nil {
		popupID := popupIDFromHref(attr(link, "href"))
		if o, ok := ParseOutcome(strings.ToLower(strings.TrimSpace(nodeText(link)))); ok {
			return o, popupID, true
		}
		// Link present but with unrecognized text: fall through to the
		// cell class, keeping the popup reference for detail lookup.
		if o, ok := outcomeFromCellClass(tr); ok {
			return o, popupID, true
		}
		return "", "", false
	}

	if o, ok := outcomeFromCellClass(tr); ok {
		return o, "", true
	}

	for td := range elements(tr, "td") {
		if o, ok := ParseOutcome(strings.ToLower(strings.TrimSpace(nodeText(td)))); ok {
			return o, "", true
		}
	}
	return "", "", false
}

func outcomeFromCellClass(tr *html.Node) (Outcome, bool) {
	for td := range elements(tr, "td") {
		switch {
		case hasClass(td, "failCase"):
			return OutcomeFail, true
		case hasClass(td, "errorCase"):
			return OutcomeError, true
		case hasClass(td, "skipCase"):
			return OutcomeSkip, true
		case hasClass(td, "passCase"):
			return OutcomePass, true
		}
	}
	// Hidden pass rows mark the case cell with class "none" and no link.
	if hasClass(tr, "hiddenRow") {
		return OutcomePass, true
	}
	return "", false
}

// fullName joins the current suite prefix with the case name. When no suite
// row preceded this test, the dotted name from the popup header line
// ("ft1.2: full.dotted.name") fills in, matching subunit2html's own layout.
func (p *parser) fullName(caseName, popupID string) string {
	if p.suite != "" {
		return p.suite + "." + caseName
	}
	if full := popupFullName(p.popups[popupID], caseName); full != "" {
		return full
	}
	return caseName
}

func popupFullName(preText, caseName string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(preText), "\n")
	_, after, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	candidate := strings.TrimSpace(after)
	if !strings.Contains(candidate, ".") {
		return ""
	}
	if strings.HasSuffix(candidate, caseName) {
		return candidate
	}
	return candidate + "." + caseName
}

// extractTraceback trims a popup <pre> block down to the traceback portion.
// Without a recognizable traceback the whole block is kept: partial detail
// beats none when triaging.
func extractTraceback(preText string) string {
	preText = strings.TrimSpace(preText)
	if preText == "" {
		return ""
	}
	if loc := tracebackRe.FindStringIndex(preText); loc != nil {
		return strings.TrimSpace(preText[loc[0]:])
	}
	return preText
}

// rowNumbers pulls the integer cells from the totals row in order:
// total, pass, fail, error, skip.
func rowNumbers(tr *html.Node) []int {
	var nums []int
	for td := range elements(tr, "td") {
		if v, err := strconv.Atoi(strings.TrimSpace(nodeText(td))); err == nil {
			nums = append(nums, v)
		}
	}
	return nums
}

// tally derives aggregate counts from the extracted rows and cross-checks
// them against the report's own totals row when one was present. The rows
// are the ground truth; a disagreement is logged, not fatal.
func (p *parser) tally() {
	r := &p.report
	for _, tr := range r.Results {
		switch tr.Outcome {
		case OutcomePass:
			r.Passed++
		case OutcomeFail:
			r.Failed++
		case OutcomeError:
			r.Errored++
		case OutcomeSkip:
			r.Skipped++
		}
	}
	r.Total = len(r.Results)

	if len(p.totals) >= 5 {
		declared := [5]int{p.totals[0], p.totals[1], p.totals[2], p.totals[3], p.totals[4]}
		derived := [5]int{r.Total, r.Passed, r.Failed, r.Errored, r.Skipped}
		if declared != derived {
			logrus.WithFields(logrus.Fields{
				"declared": declared,
				"derived":  derived,
			}).Warn("report totals row disagrees with extracted rows")
		}
	}
}

// popupIDFromHref extracts the popup div id from a
// javascript:showTestDetail('div_ft1.2') href.
func popupIDFromHref(href string) string {
	start := strings.IndexByte(href, '\'')
	if start < 0 {
		return ""
	}
	rest := href[start+1:]
	end := strings.IndexByte(rest, '\'')
	if end < 0 {
		return ""
	}
	return rest[:end]
}

// --- node helpers ---

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// nodeText concatenates all descendant text nodes without reformatting,
// so <pre> content keeps its line structure.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

func findElement(n *html.Node, tag string) *html.Node {
	for e := range elements(n, tag) {
		return e
	}
	return nil
}

func findElementClass(n *html.Node, tag, class string) *html.Node {
	for e := range elements(n, tag) {
		if hasClass(e, class) {
			return e
		}
	}
	return nil
}

// elements iterates descendant elements with the given tag in document order.
func elements(n *html.Node, tag string) func(yield func(*html.Node) bool) {
	return func(yield func(*html.Node) bool) {
		var visit func(*html.Node) bool
		visit = func(n *html.Node) bool {
			if n.Type == html.ElementNode && n.Data == tag {
				if !yield(n) {
					return false
				}
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if !visit(c) {
					return false
				}
			}
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !visit(c) {
				return
			}
		}
	}
}
