// Package essay builds the correction prompt and turns the model's reply into
// the three feedback sections written back to Notion.
package essay

import "fmt"

// Section labels the model is asked to put in front of each part of its reply.
const (
	LabelCorrected   = "[修正文]"
	LabelAnalysis    = "[錯誤分析]"
	LabelSuggestions = "[高分建議]"
)

// SystemPrompt is sent as the system message of every correction request.
const SystemPrompt = "You are a helpful assistant."

const promptTemplate = `這是我的英文短文，請幫我：
1️⃣ 修正所有文法錯誤，並輸出為「` + LabelCorrected + ` 修正後的短文」。
2️⃣ 根據托福考試評分標準，提供「` + LabelAnalysis + ` 錯誤分析」。
3️⃣ 提供「` + LabelSuggestions + ` 如何提升文章品質」並提出具體改進建議及更自然的詞彙或句型,每個建議至少提供一個例句。

我的文章：
%s
`

// BuildPrompt returns the user message for essay.
func BuildPrompt(essay string) string {
	return fmt.Sprintf(promptTemplate, essay)
}
