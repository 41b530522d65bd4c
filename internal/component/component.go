// Package component defines the component request model and the prompt
// construction for the generation pipeline.
package component

import (
	"fmt"
	"regexp"
)

// Request describes the UI component the user wants generated.
// All fields are free text; empty values are allowed.
type Request struct {
	Name     string `json:"name"`
	Purpose  string `json:"purpose"`
	Props    string `json:"props"`
	Behavior string `json:"behavior"`
	Styling  string `json:"styling"`
	Examples string `json:"examples"`
}

// SystemPrompt is the fixed instruction describing the desired output style.
const SystemPrompt = `You are an expert React developer specializing in TypeScript and TailwindCSS.
Your goal is to generate a high-quality, reusable, and well-documented React component
based on the user's input. The component must adhere to the following:

1. Use TypeScript for type safety and include detailed prop types.
2. Use TailwindCSS for styling, following a utility-first approach.
3. Include well-written JSDoc comments for props and any functions.
4. Output the code in a complete and functional format.

Include usage examples as comments in the output. The output should be a complete .tsx file.`

const userPromptTemplate = `Create a React component using TypeScript and styled with TailwindCSS.

- **Component Name**: %s
- **Purpose**: %s
- **Props**: %s
- **Behavior**: %s
- **Styling**: %s
- **Examples**: %s`

// Prompt interpolates the request fields into the user prompt template.
// Substitution is literal; each field appears exactly once in its slot.
func (r Request) Prompt() string {
	return fmt.Sprintf(userPromptTemplate,
		r.Name, r.Purpose, r.Props, r.Behavior, r.Styling, r.Examples)
}

// validName matches component names that are safe to use as file names:
// a letter followed by letters, digits, underscores, or hyphens.
var validName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateName checks that the component name can be used as a file name.
// Path separators, traversal sequences, and empty names are rejected so a
// bad name fails before any API call is made.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("component name is empty")
	}
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid component name %q: must start with a letter and contain only letters, digits, underscores, or hyphens", name)
	}
	return nil
}

// FileName returns the output file name for the component, <Name>.tsx.
// The name must have passed ValidateName.
func (r Request) FileName() string {
	return r.Name + ".tsx"
}
