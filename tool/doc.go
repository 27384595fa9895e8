// Package tool provides the web search boundary used by the research worker.
//
// Two Search backends are included (Tavily and Brave) plus a Page fetcher
// that extracts readable text from a URL. Results feed prompts only; snippets
// are stripped of HTML first.
package tool
