package change

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// fencedBlock is a fenced code block found in a Markdown response.
type fencedBlock struct {
	Lang    string
	Content []byte
}

// decodeMarkdown decodes every json or yaml fenced block in a Markdown
// document. Untagged blocks are tried when their content looks like JSON.
func decodeMarkdown(source []byte) ([]Response, error) {
	blocks, err := fencedBlocks(source)
	if err != nil {
		return nil, err
	}

	var responses []Response
	for idx, block := range blocks {
		content := bytes.TrimSpace(block.Content)
		if len(content) == 0 {
			continue
		}

		var decoded []Response
		switch block.Lang {
		case "json":
			decoded, err = decodeJSON(content)
		case "yaml", "yml":
			decoded, err = decodeYAML(content)
		case "":
			if content[0] != '{' && content[0] != '[' {
				continue
			}
			decoded, err = decodeJSON(content)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("code block %d: %w", idx+1, err)
		}
		responses = append(responses, decoded...)
	}

	return responses, nil
}

func fencedBlocks(source []byte) ([]fencedBlock, error) {
	var blocks []fencedBlock

	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var content bytes.Buffer
		lines := fenced.Lines()
		for i := range lines.Len() {
			segment := lines.At(i)
			content.Write(segment.Value(source))
		}

		blocks = append(blocks, fencedBlock{
			Lang:    strings.ToLower(string(fenced.Language(source))),
			Content: content.Bytes(),
		})
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return blocks, nil
}
