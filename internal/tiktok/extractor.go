package tiktok

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
)

// A strategy tries to pull the bio out of one representation of the
// parsed profile page. Each one contains its own failures and simply
// reports no match, so the next strategy gets its turn.
type strategy func(doc *html.Node) (string, bool)

var strategies = []strategy{
	bioFromJSONLD,
	bioFromMetaDescription,
	bioFromStateBlob,
	bioFromInlineElement,
}

// ExtractBio parses the page once, runs the strategies in priority
// order and returns the first bio any of them produces. ok is false
// when the page exposes none of the known representations, which is a
// valid outcome.
func ExtractBio(page string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", false
	}
	for _, s := range strategies {
		if bio, ok := s(doc); ok {
			return bio, true
		}
	}
	return "", false
}

// Strategy 1: JSON-LD script block with a description field.
func bioFromJSONLD(doc *html.Node) (string, bool) {
	node := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "script" &&
			getAttr(n, "type") == "application/ld+json"
	})
	if node == nil || node.FirstChild == nil {
		return "", false
	}

	var data struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(node.FirstChild.Data), &data); err != nil {
		return "", false
	}
	if data.Description == "" {
		return "", false
	}
	return data.Description, true
}

// Strategy 2: the page's meta description tag.
func bioFromMetaDescription(doc *html.Node) (string, bool) {
	node := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "meta" &&
			getAttr(n, "name") == "description"
	})
	if node == nil {
		return "", false
	}
	content := getAttr(node, "content")
	if content == "" {
		return "", false
	}
	return content, true
}

// Strategy 3: the SIGI_STATE blob the web app hydrates from. The user
// record has shipped in two locations over time, so both are probed.
func bioFromStateBlob(doc *html.Node) (string, bool) {
	node := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "script" &&
			getAttr(n, "id") == "SIGI_STATE"
	})
	if node == nil || node.FirstChild == nil {
		return "", false
	}

	type userRecord struct {
		Signature string `json:"signature"`
	}
	var state struct {
		UserModule struct {
			Users map[string]userRecord `json:"users"`
		} `json:"UserModule"`
		MobileUsers map[string]userRecord `json:"MobileUsers"`
	}
	if err := json.Unmarshal([]byte(node.FirstChild.Data), &state); err != nil {
		return "", false
	}

	for _, user := range state.UserModule.Users {
		if user.Signature != "" {
			return user.Signature, true
		}
	}
	for _, user := range state.MobileUsers {
		if user.Signature != "" {
			return user.Signature, true
		}
	}
	return "", false
}

// Strategy 4: the rendered bio element itself, nested markup stripped.
func bioFromInlineElement(doc *html.Node) (string, bool) {
	node := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && getAttr(n, "data-e2e") == "user-bio"
	})
	if node == nil {
		return "", false
	}
	bio := strings.TrimSpace(nodeText(node))
	if bio == "" {
		return "", false
	}
	return bio, true
}

// findNode walks the tree depth-first and returns the first node the
// match function accepts.
func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText collects the text content beneath a node, discarding tags.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
