// Package ranking scrapes a Battlesnake.com profile page for a player's
// current competition standings, grounded on the teacher's ranking.go.
package ranking

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Result is one competition's current standing for a profile.
type Result struct {
	Name  string
	Score int
	Rank  int
}

// FetchProfile scrapes profileURL (e.g.
// "https://play.battlesnake.com/profile/<name>") for every competition
// card on the page, grounded on GetCompetitionResults. The teacher
// hard-coded a single profile; here the URL is a parameter so the
// Battlesnake HTTP handlers can report standings for whichever agent
// name the deployment is running under.
func FetchProfile(profileURL string) ([]Result, error) {
	resp, err := http.Get(profileURL)
	if err != nil {
		return nil, fmt.Errorf("ranking: retrieve profile: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ranking: read profile body: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ranking: parse profile html: %w", err)
	}

	var results []Result
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" && hasClasses(n, []string{"card", "p-1", "text-white"}) {
			var r Result
			extractCompetitionDetails(n, &r)
			results = append(results, r)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	return results, nil
}

func extractCompetitionDetails(n *html.Node, result *Result) {
	var f func(*html.Node)
	f = func(node *html.Node) {
		if node.Type == html.ElementNode {
			switch {
			case node.Data == "h4" && hasClasses(node, []string{"text-center", "text-lg", "font-bold", "uppercase"}):
				result.Name = strings.TrimSpace(getNodeText(node))
			case node.Data == "p" && (hasClasses(node, []string{"text-4xl", "text-center", "font-bold"}) ||
				hasClasses(node, []string{"text-2xl", "text-center", "font-bold"})):
				scoreStr := strings.ReplaceAll(strings.TrimSpace(getNodeText(node)), ",", "")
				if scoreStr != "--" {
					if score, err := strconv.Atoi(scoreStr); err == nil {
						result.Score = score
					}
				}
			case node.Data == "p" && hasClasses(node, []string{"text-lg", "text-center", "text-sm"}):
				if rankStr := extractRank(node); rankStr != "" {
					if rank, err := strconv.Atoi(rankStr); err == nil {
						result.Rank = rank
					}
				}
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
}

func getAttr(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}

func hasClasses(n *html.Node, required []string) bool {
	classes := make(map[string]bool)
	for _, c := range strings.Fields(getAttr(n, "class")) {
		classes[c] = true
	}
	for _, r := range required {
		if !classes[r] {
			return false
		}
	}
	return true
}

func getNodeText(n *html.Node) string {
	var buf bytes.Buffer
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return buf.String()
}

func extractRank(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "big" {
			return strings.TrimFunc(getNodeText(c), func(r rune) bool { return !unicode.IsDigit(r) })
		}
	}
	return ""
}
