package annotator

import (
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/SAP-F-2025/quizmark/internal/grading"
)

// Attributes and classes of the rendered quiz markup.
const (
	AttrTaskID        = "data-task-id"
	AttrQuestionIndex = "data-question-index"
	AttrQuestionID    = "data-question-id"
	AttrAnswerID      = "data-answer-id"

	ClassCorrect   = "correct"
	ClassIncorrect = "incorrect"
)

// taskRoot returns the element carrying the task ID, or the whole document
// when the page renders a single task without a container.
func taskRoot(doc *goquery.Document, taskID string) *goquery.Selection {
	root := withAttr(doc.Selection, AttrTaskID, taskID)
	if root.Length() == 0 {
		return doc.Selection
	}
	return root.First()
}

// questionBlock prefers the echoed question ID and falls back to the
// question's position.
func questionBlock(root *goquery.Selection, position int, questionID uint) *goquery.Selection {
	if questionID != 0 {
		if block := withAttr(root, AttrQuestionID, strconv.FormatUint(uint64(questionID), 10)); block.Length() > 0 {
			return block.First()
		}
	}
	return withAttr(root, AttrQuestionIndex, strconv.Itoa(position)).First()
}

func withAttr(scope *goquery.Selection, attr, value string) *goquery.Selection {
	return scope.Find("[" + attr + "]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr(attr)
		return v == value
	})
}

// renderedOption is one radio input with the label the verdict lands on.
type renderedOption struct {
	input  *goquery.Selection
	label  *goquery.Selection
	option grading.Option
}

// inputName is the radio group name of a question block. The block's own
// index wins over the key position for blocks matched by ID.
func inputName(block *goquery.Selection, position int) string {
	if idx, ok := block.Attr(AttrQuestionIndex); ok && idx != "" {
		return "question_" + idx
	}
	return "question_" + strconv.Itoa(position)
}

// collectOptions reads the block's radio group. An option's position is its
// index within the group; the value attribute is never interpreted as one.
func collectOptions(doc *goquery.Document, block *goquery.Selection, position int) []renderedOption {
	var out []renderedOption
	selector := `input[type="radio"][name="` + inputName(block, position) + `"]`
	block.Find(selector).Each(func(i int, input *goquery.Selection) {
		value, _ := input.Attr("value")
		_, checked := input.Attr("checked")

		opt := grading.Option{
			Position: i,
			Value:    value,
			Selected: checked,
		}
		if raw, ok := input.Attr(AttrAnswerID); ok {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
				opt.AnswerID = uint(id)
			}
		}

		out = append(out, renderedOption{
			input:  input,
			label:  labelFor(doc, input),
			option: opt,
		})
	})
	return out
}

// labelFor finds label[for=<id>] anywhere in the document, or a label
// wrapping the input.
func labelFor(doc *goquery.Document, input *goquery.Selection) *goquery.Selection {
	if id, ok := input.Attr("id"); ok && id != "" {
		label := withAttr(doc.Selection, "for", id).Filter("label")
		if label.Length() > 0 {
			return label
		}
	}
	return input.Closest("label")
}
