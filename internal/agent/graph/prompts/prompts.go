package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/classifier_prompt.txt
var classifierPrompt string

//go:embed template/specialist_prompt.txt
var specialistPrompt string

//go:embed template/general_prompt.txt
var generalPrompt string

// RenderClassifier renders the topic classification prompt for question.
func RenderClassifier(ctx context.Context, question string) (string, error) {
	return render(ctx, "classifier", classifierPrompt, map[string]any{
		"question": question,
	})
}

// RenderSpecialist renders the prompt of a topic specialist. topic is the human label
// of the topic, e.g. "car rental".
func RenderSpecialist(ctx context.Context, topic, docContext, question string) (string, error) {
	return render(ctx, "specialist", specialistPrompt, map[string]any{
		"topic":    topic,
		"context":  docContext,
		"question": question,
	})
}

// RenderGeneral renders the prompt of the general specialist.
func RenderGeneral(ctx context.Context, docContext, question string) (string, error) {
	return render(ctx, "general", generalPrompt, map[string]any{
		"context":  docContext,
		"question": question,
	})
}

// render formats tpl through an Eino prompt component so prompt callbacks fire.
// Values are substituted verbatim; braces inside document text are not re-parsed.
func render(ctx context.Context, name, tpl string, vars map[string]any) (string, error) {
	t := prompt.FromMessages(schema.FString, schema.UserMessage(tpl))
	msgs, err := t.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("%s prompt render: %w", name, err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("%s prompt render: empty result", name)
	}
	return msgs[0].Content, nil
}
