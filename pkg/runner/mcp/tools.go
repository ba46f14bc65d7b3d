package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/dreams/pkg/dream"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListDreamsTool(srv, svc)
	registerGetDreamTool(srv, svc)
	registerRecordDreamTool(srv, svc)
	registerUpdateDreamTool(srv, svc)
	registerDeleteDreamTool(srv, svc)
	registerProcessDreamTool(srv, svc)
	registerImagePromptTool(srv, svc)
}

func moodNames() []string {
	out := make([]string, 0, len(dream.AllMoods()))
	for _, m := range dream.AllMoods() {
		out = append(out, m.String())
	}
	return out
}

func levelNames() []string {
	out := make([]string, 0, len(dream.AllSurrealLevels()))
	for _, l := range dream.AllSurrealLevels() {
		out = append(out, l.String())
	}
	return out
}

func registerListDreamsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_dreams",
		mcp.WithDescription("List dreams, most recent first, optionally filtered."),
		mcp.WithString("mood",
			mcp.Description("Only dreams with this mood."),
			mcp.Enum(moodNames()...),
		),
		mcp.WithString("surreal_level",
			mcp.Description("Only dreams with this surreal level."),
			mcp.Enum(levelNames()...),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive text matched against title and content."),
		),
		mcp.WithString("from",
			mcp.Description("Earliest date, YYYY-MM-DD or RFC3339."),
		),
		mcp.WithString("to",
			mcp.Description("Latest date, YYYY-MM-DD or RFC3339."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Mood         string `json:"mood"`
			SurrealLevel string `json:"surreal_level"`
			Search       string `json:"search"`
			From         string `json:"from"`
			To           string `json:"to"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		results, err := svc.ListDreams(ctx, ListOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"dreams": results,
			"count":  len(results),
		})
	})
}

func registerGetDreamTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_dream",
		mcp.WithDescription("Fetch a single dream by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Dream identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.DreamByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerRecordDreamTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"record_dream",
		mcp.WithDescription("Record a new dream from text or an audio reference."),
		mcp.WithString("text",
			mcp.Description("What the dreamer remembers."),
		),
		mcp.WithString("audio_uri",
			mcp.Description("Reference to a recorded audio file."),
		),
		mcp.WithBoolean("process",
			mcp.Description("Reconstruct the narrative right away (default false)."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Text     string `json:"text"`
			AudioURI string `json:"audio_uri"`
			Process  bool   `json:"process"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.Record(ctx, RecordOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateDreamTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_dream",
		mcp.WithDescription("Edit the title, narrative, mood or surreal level of a dream."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Dream identifier to modify."),
		),
		mcp.WithString("title",
			mcp.Description("New title."),
		),
		mcp.WithString("reconstructed_content",
			mcp.Description("New narrative text."),
		),
		mcp.WithString("mood",
			mcp.Description("New mood."),
			mcp.Enum(moodNames()...),
		),
		mcp.WithString("surreal_level",
			mcp.Description("New surreal level."),
			mcp.Enum(levelNames()...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID                   string  `json:"id"`
			Title                *string `json:"title"`
			ReconstructedContent *string `json:"reconstructed_content"`
			Mood                 *string `json:"mood"`
			SurrealLevel         *string `json:"surreal_level"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		p := dream.Patch{
			Title:                args.Title,
			ReconstructedContent: args.ReconstructedContent,
		}
		if args.Mood != nil {
			m, err := dream.ParseMood(*args.Mood)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			p.Mood = &m
		}
		if args.SurrealLevel != nil {
			l, err := dream.ParseSurrealLevel(*args.SurrealLevel)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			p.SurrealLevel = &l
		}

		dto, err := svc.Update(ctx, args.ID, p)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteDreamTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_dream",
		mcp.WithDescription("Permanently delete a dream."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Dream identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.Delete(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"id": id, "deleted": true})
	})
}

func registerProcessDreamTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"process_dream",
		mcp.WithDescription("Reconstruct an unprocessed dream into a titled narrative."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Dream identifier to process."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Process(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerImagePromptTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"dream_image_prompt",
		mcp.WithDescription("Describe a dream as an 8-bit pixel art scene."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Dream identifier to describe."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		prompt, err := svc.ImagePrompt(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"id": id, "prompt": prompt})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
