package driver

import (
	"fmt"
	"io"
)

// Node is a node of a concrete syntax tree. Terminal nodes carry their text
// and position; non-terminal nodes carry their children.
type Node struct {
	KindName string  `json:"kind_name"`
	Text     string  `json:"text,omitempty"`
	Line     int     `json:"line,omitempty"`
	Col      int     `json:"col,omitempty"`
	Children []*Node `json:"children,omitempty"`

	// Missing marks a terminal that was expected but not found, or a
	// non-terminal discarded during error recovery.
	Missing bool `json:"missing,omitempty"`
}

func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	switch {
	case node.Missing:
		fmt.Fprintf(w, "%v%v (missing)\n", ruledLine, node.KindName)
	case node.Text != "":
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.KindName, node.Text)
	default:
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.KindName)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
