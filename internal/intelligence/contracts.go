package intelligence

// Tool names the chat model may request.
const (
	ToolOpenApp        = "open_app"
	ToolSearchWeb      = "search_web"
	ToolGetTodayEvents = "get_today_events"
)

// ToolCall is a tool request decoded from model output. The concrete type
// is one of OpenApp, SearchWeb, TodayEvents or UnknownTool.
type ToolCall interface {
	ToolName() string
	toolCall()
}

// OpenApp asks to launch an application by its short name.
type OpenApp struct {
	AppName string
}

// SearchWeb asks to open a web search. Query may be empty.
type SearchWeb struct {
	Query string
}

// TodayEvents asks for today's calendar events.
type TodayEvents struct{}

// UnknownTool is any tool name outside the known set.
type UnknownTool struct {
	Name string
}

func (OpenApp) ToolName() string     { return ToolOpenApp }
func (SearchWeb) ToolName() string   { return ToolSearchWeb }
func (TodayEvents) ToolName() string { return ToolGetTodayEvents }
func (u UnknownTool) ToolName() string {
	return u.Name
}

func (OpenApp) toolCall()     {}
func (SearchWeb) toolCall()   {}
func (TodayEvents) toolCall() {}
func (UnknownTool) toolCall() {}

// Reply is the chat model's answer: either prose or a tool request.
type Reply struct {
	Text string
	Tool ToolCall
}

// IsTool reports whether the reply requests a tool.
func (r Reply) IsTool() bool {
	return r.Tool != nil
}

// rawToolCall is the JSON shape the model is told to emit.
type rawToolCall struct {
	Tool *string        `json:"tool"`
	Args map[string]any `json:"args"`
}

// decode converts the wire shape into a typed ToolCall. Non-string
// argument values are treated as missing.
func (r rawToolCall) decode() ToolCall {
	switch *r.Tool {
	case ToolOpenApp:
		return OpenApp{AppName: stringArg(r.Args, "app_name")}
	case ToolSearchWeb:
		return SearchWeb{Query: stringArg(r.Args, "query")}
	case ToolGetTodayEvents:
		return TodayEvents{}
	default:
		return UnknownTool{Name: *r.Tool}
	}
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}
