package domain

import "context"

// ServicePort is the level service contract used by http and the CLI
type ServicePort interface {
	Extract(ctx context.Context, in FeaturesInput) (FeaturesResult, error)
	ExtractBytes(ctx context.Context, in RawInput) (FeaturesResult, error)
	Estimate(ctx context.Context, in FeaturesInput) (EstimateResult, error)
	ExtractBatch(ctx context.Context, in BatchInput) []BatchItem
	Keys(in KeysInput) ([]string, error)
	Analysis(ctx context.Context, id string) (Analysis, error)
	Recent(ctx context.Context, limit int) ([]Analysis, error)
	Info() PipelineInfo
}
