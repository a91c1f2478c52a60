package web

import "html/template"

type MenuItem struct {
	Name string
	URL  string
	Icon template.HTML // SVG icon as a string
}

var menuItems = []MenuItem{
	{
		Name: "Home",
		URL:  "/",
		Icon: template.HTML(HomeIcon),
	},
	{
		Name: "Sentiment Analysis",
		URL:  "/sentiment",
		Icon: template.HTML(SentimentIcon),
	},
	{
		Name: "News Summarizer",
		URL:  "/summarizer",
		Icon: template.HTML(NewsIcon),
	},
	{
		Name: "ChainReact",
		URL:  "/chainreact",
		Icon: template.HTML(ChatIcon),
	},
	{
		Name: "StockPrize Ally",
		URL:  "/stockprize",
		Icon: template.HTML(ChartIcon),
	},
}

const iconAttrs = `class="icon" xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"`

const (
	HomeIcon      = `<svg ` + iconAttrs + `><path d="m3 9 9-7 9 7v11a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2z"/><polyline points="9 22 9 12 15 12 15 22"/></svg>`
	SentimentIcon = `<svg ` + iconAttrs + `><circle cx="12" cy="12" r="10"/><path d="M8 14s1.5 2 4 2 4-2 4-2"/><line x1="9" x2="9.01" y1="9" y2="9"/><line x1="15" x2="15.01" y1="9" y2="9"/></svg>`
	NewsIcon      = `<svg ` + iconAttrs + `><path d="M4 22h16a2 2 0 0 0 2-2V4a2 2 0 0 0-2-2H8a2 2 0 0 0-2 2v16a2 2 0 0 1-2 2Zm0 0a2 2 0 0 1-2-2v-9c0-1.1.9-2 2-2h2"/><path d="M18 14h-8"/><path d="M15 18h-5"/><path d="M10 6h8v4h-8V6Z"/></svg>`
	ChatIcon      = `<svg ` + iconAttrs + `><path d="M21 15a2 2 0 0 1-2 2H7l-4 4V5a2 2 0 0 1 2-2h14a2 2 0 0 1 2 2z"/></svg>`
	ChartIcon     = `<svg ` + iconAttrs + `><path d="M3 3v18h18"/><path d="m19 9-5 5-4-4-3 3"/></svg>`
)
