package service

import (
	"encoding/json"
	"strings"

	"catalog_api/internal/domain/post/model"
)

// TagInput 创建帖子时的标签输入：仅有 label，或带有外部实体信息的完整标签
type TagInput interface {
	tag() model.Tag
}

// LabelOnly 只有名称的标签
type LabelOnly struct {
	Label string
}

func (t LabelOnly) tag() model.Tag {
	return model.Tag{Label: t.Label, Description: model.TagPlaceholderDescription}
}

// FullTag 来自标签查询结果的完整标签
type FullTag struct {
	Label       string
	WikidataURL string
	Description string
}

func (t FullTag) tag() model.Tag {
	desc := t.Description
	if strings.TrimSpace(desc) == "" {
		desc = model.TagPlaceholderDescription
	}
	return model.Tag{Label: t.Label, WikidataURL: t.WikidataURL, Description: desc}
}

type fullTagPayload struct {
	Label       string `json:"label"`
	URL         string `json:"url"`
	WikidataURL string `json:"wikidata_url"`
	Description string `json:"description"`
}

// ParseTagInput 表单中的单个 tags 字段：JSON 对象解析为 FullTag，其余按纯 label 处理
func ParseTagInput(raw string) TagInput {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		var p fullTagPayload
		if err := json.Unmarshal([]byte(trimmed), &p); err == nil && strings.TrimSpace(p.Label) != "" {
			url := p.WikidataURL
			if url == "" {
				url = p.URL
			}
			return FullTag{Label: p.Label, WikidataURL: url, Description: p.Description}
		}
	}
	return LabelOnly{Label: raw}
}

// ParseTagInputs 批量解析
func ParseTagInputs(raws []string) []TagInput {
	inputs := make([]TagInput, 0, len(raws))
	for _, raw := range raws {
		inputs = append(inputs, ParseTagInput(raw))
	}
	return inputs
}

// normalizeTags 去除首尾空白、丢弃空 label，并按 label 去重（保留第一次出现）
func normalizeTags(inputs []TagInput) []model.Tag {
	seen := make(map[string]bool, len(inputs))
	tags := make([]model.Tag, 0, len(inputs))
	for _, in := range inputs {
		if in == nil {
			continue
		}
		t := in.tag()
		t.Label = strings.TrimSpace(t.Label)
		if t.Label == "" || seen[t.Label] {
			continue
		}
		seen[t.Label] = true
		tags = append(tags, t)
	}
	return tags
}
