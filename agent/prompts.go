package agent

// Prompt templates for the classifier, the four workers and the consensus
// stage. All take the raw user input via fmt.Sprintf; the research template
// additionally takes the formatted search results.

const classifyTemplate = `As a task dispatcher, analyze the user request and decide the best way to handle it.

User request: %s

Available workers:
- research: needs information search, fact finding, data gathering
- analysis: needs analysis, comparison, evaluation, summarizing
- creative: needs content creation, writing, design, ideas
- technical: needs a technical solution, programming, system design

Reply with exactly one keyword: research, analysis, creative, or technical`

const researchTemplate = `As a professional research assistant, provide a detailed report based on the search results below.

User request: %s

Search results:
%s

Please provide:
1. Key findings
2. Detailed analysis
3. Recommendations
4. Sources`

const analysisTemplate = `As a professional analyst, analyze the following in depth.

User request: %s

Please provide:
1. Detailed analysis
2. Pros and cons
3. Risk assessment
4. Recommendations and conclusion`

const creativeTemplate = `As a creative expert, produce original content for the following request.

User request: %s

Please provide:
1. Creative concept
2. Full content
3. Implementation suggestions
4. Creative highlights`

const technicalTemplate = `As a technical expert, provide a technical solution for the following request.

User request: %s

Please provide:
1. Technical approach
2. Implementation steps
3. Code examples (if applicable)
4. Technical recommendations`

const consensusTemplate = `As a swarm coordinator, synthesize the views of several specialist workers on the same question.

User question: %s

Research view: %s
Analysis view: %s
Creative view: %s
Technical view: %s

Combine these views into one balanced, complete answer. Include:
1. The core points of each view
2. Agreements and disagreements
3. A combined recommendation
4. A path to act on it`

// defaultTemplate returns the built-in prompt template for a kind.
func defaultTemplate(kind TaskKind) string {
	switch kind {
	case TaskResearch:
		return researchTemplate
	case TaskAnalysis:
		return analysisTemplate
	case TaskCreative:
		return creativeTemplate
	case TaskTechnical:
		return technicalTemplate
	default:
		return analysisTemplate
	}
}
