package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerDreamsResource(srv, svc)
	registerDreamTemplate(srv, svc)
}

func registerDreamsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"dreams://dreams",
		"Dreams",
		mcp.WithResourceDescription("Every recorded dream, most recent first."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		dreams, err := svc.ListDreams(ctx, ListOptions{})
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"dreams": dreams,
			"count":  len(dreams),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerDreamTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"dreams://dreams/{id}",
		"Dream Details",
		mcp.WithTemplateDescription("A single dream with its reconstruction."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, _ := request.Params.Arguments["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("dream id is required")
		}
		dto, err := svc.DreamByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"dream": dto})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
