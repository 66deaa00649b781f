package synth

import (
	"fmt"
	"strings"
)

// SystemPrompt frames every synthesis call. The gateway writes in a
// formal regulatory register and must flag gaps instead of inventing
// content.
const SystemPrompt = `You are a medical writer preparing a Drug Safety Report (DSR). Extract and synthesize content accurately from the provided Investigator Brochure sections.`

// BuildPrompt assembles the user prompt for one field from its
// placeholder, description, source excerpt, and mapping notes.
func BuildPrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Your task: Extract and synthesize content for the DSR field: %s\n", req.Placeholder))
	sb.WriteString(fmt.Sprintf("Field purpose: %s\n\n", req.Description))
	if req.Notes != "" {
		sb.WriteString(fmt.Sprintf("Additional context: %s\n\n", req.Notes))
	}
	sb.WriteString("Source content from Investigator Brochure:\n")
	sb.WriteString(req.Source)
	sb.WriteString(`

Instructions:
1. Extract relevant information from the IB sections above
2. Synthesize into cohesive, well-written content appropriate for a DSR
3. Use formal medical/scientific writing style
4. Be concise but comprehensive
5. Do not include reference citations (these are added separately)
6. Do not use placeholder text or phrases like "based on the IB"
7. If the IB content is insufficient, note what specific information is missing
8. Present the information in a clear, professional manner suitable for regulatory submission

Output the extracted/synthesized content only, with no preamble or explanation.`)
	return sb.String()
}
