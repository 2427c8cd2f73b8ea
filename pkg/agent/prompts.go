package agent

const generateConfigPromptTemplate = `You are an expert at creating promptfoo configuration files. Generate a valid configuration following the official promptfoo schema.

Key components to include:
1. Provider configuration (API keys should use environment variables)
2. Prompt templates with proper variable substitution
3. Test cases with appropriate assertions (contains, similar, llm-rubric, etc.)
4. Evaluation options for better control
5. Output configuration for results

Examples of similar configs:
{{.Examples}}

Schema (follow this exactly):
{{.Schema}}

Requirements:
{{.Requirements}}

Generate a valid promptfoo YAML configuration that matches these requirements and follows the schema exactly:`

type generateConfigPromptData struct {
	Examples     string
	Schema       string
	Requirements string
}
