package main

import (
	"miigate/internal/platform/config"
	"miigate/internal/upstream"
)

func upstreamCMOC(cfg config.Config) *upstream.CMOCClient {
	return upstream.NewCMOCClient(cfg.LegacyGalleryBaseURL, cfg.UpstreamTimeout)
}

func upstreamAccounts(cfg config.Config) *upstream.AccountsClient {
	return upstream.NewAccountsClient(cfg.AccountLookupBaseURL, cfg.UpstreamTimeout)
}

func upstreamStudio(cfg config.Config) *upstream.StudioClient {
	return upstream.NewStudioClient(cfg.FirstGenStudioBaseURL, cfg.UpstreamTimeout)
}

func upstreamRenderer(cfg config.Config) *upstream.RendererClient {
	return upstream.NewRendererClient(cfg.ModernRendererBaseURL, cfg.UpstreamTimeout)
}
