// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stats

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// ReportRender 定義輸出行為
type ReportRender interface {
	Write(w io.Writer, r *Report) error
}

// Json渲染
type JsonReportRender struct{}

func (jr *JsonReportRender) Write(w io.Writer, r *Report) error {
	return json.NewEncoder(w).Encode(r)
}

// YAML渲染
type YAMLReportRender struct{}

func (yr *YAMLReportRender) Write(w io.Writer, r *Report) error {
	return forceReadableList(w, r)
}

// 文字表格渲染
type TextReportRender struct{}

func (tr *TextReportRender) Write(w io.Writer, r *Report) error {
	_, err := io.WriteString(w, r.Table())
	return err
}

// RenderByName 依名稱取得渲染器：json | yaml | text，其餘回傳 text。
func RenderByName(name string) ReportRender {
	switch name {
	case "json":
		return &JsonReportRender{}
	case "yaml", "yml":
		return &YAMLReportRender{}
	default:
		return &TextReportRender{}
	}
}

// 只有「最內層的一維陣列」輸出成 flow style：[..., ...]，外層維度保持展開
func forceReadableList[T any](w io.Writer, t *T) error {
	var node yaml.Node
	if err := node.Encode(t); err != nil {
		return err
	}
	styleReadableSequences(&node)

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&node)
}

func styleReadableSequences(n *yaml.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
		return

	case yaml.SequenceNode:
		hasChildSeq := false
		for _, c := range n.Content {
			if c != nil && c.Kind == yaml.SequenceNode {
				hasChildSeq = true
				break
			}
		}
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
		if !hasChildSeq {
			n.Style = yaml.FlowStyle
		}
		return

	default:
		return
	}
}
