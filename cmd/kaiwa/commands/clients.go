package commands

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/kaiwastudio/kaiwa/cmd/kaiwa/internal/config"
	"github.com/kaiwastudio/kaiwa/pkg/archive"
	"github.com/kaiwastudio/kaiwa/pkg/studioapi"
	"github.com/kaiwastudio/kaiwa/pkg/vapi"
	"github.com/kaiwastudio/kaiwa/pkg/vision"
)

// loadStudioClient builds the backend client from studio.yaml. A
// missing config falls back to the local development defaults.
func loadStudioClient(contextName string) (*studioapi.Client, *config.Studio, error) {
	dir, err := resolveContextDir(contextName)
	if err != nil {
		return nil, nil, err
	}
	studio, err := config.LoadService[config.Studio](dir, "studio")
	if err != nil {
		studio = &config.Studio{BaseURL: studioapi.DefaultBaseURL, UserID: "default"}
	}
	var opts []studioapi.Option
	if studio.BaseURL != "" {
		opts = append(opts, studioapi.WithBaseURL(studio.BaseURL))
	}
	return studioapi.NewClient(opts...), studio, nil
}

// loadVapiClient builds the transport client from vapi.yaml. A missing
// config yields a client with no public key; starting a session with it
// reports the configuration gap before touching the network.
func loadVapiClient(contextName string) (*vapi.Client, *config.Vapi, error) {
	dir, err := resolveContextDir(contextName)
	if err != nil {
		return nil, nil, err
	}
	vcfg, err := config.LoadService[config.Vapi](dir, "vapi")
	if err != nil {
		vcfg = &config.Vapi{}
	}
	var opts []vapi.Option
	if vcfg.WebSocketURL != "" {
		opts = append(opts, vapi.WithWebSocketURL(vcfg.WebSocketURL))
	}
	return vapi.NewClient(vcfg.PublicKey, opts...), vcfg, nil
}

// loadAnalyzer builds the image analyzer from vision.yaml. The studio
// provider is the default, it needs no local credentials.
func loadAnalyzer(ctx context.Context, contextName string) (vision.Analyzer, error) {
	dir, err := resolveContextDir(contextName)
	if err != nil {
		return nil, err
	}
	vcfg, err := config.LoadService[config.Vision](dir, "vision")
	if err != nil {
		vcfg = &config.Vision{Provider: "studio"}
	}

	switch vcfg.Provider {
	case "", "studio":
		client, _, err := loadStudioClient(contextName)
		if err != nil {
			return nil, err
		}
		return vision.NewStudioAnalyzer(client), nil
	case "openai":
		if vcfg.APIKey == "" {
			return nil, fmt.Errorf("vision provider %q needs api_key in vision.yaml", vcfg.Provider)
		}
		return vision.NewOpenAIAnalyzer(vcfg.APIKey, vcfg.Model), nil
	case "gemini":
		if vcfg.APIKey == "" {
			return nil, fmt.Errorf("vision provider %q needs api_key in vision.yaml", vcfg.Provider)
		}
		return vision.NewGeminiAnalyzer(ctx, vcfg.APIKey, vcfg.Model)
	default:
		return nil, fmt.Errorf("unknown vision provider %q (want studio, openai or gemini)", vcfg.Provider)
	}
}

// loadArchiveStore builds the artifact store from archive.yaml. The
// default is a local store under the config directory.
func loadArchiveStore(contextName string) (archive.Store, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	dir, err := cfg.ResolveContext(contextName)
	if err != nil {
		return nil, err
	}
	acfg, err := config.LoadService[config.Archive](dir, "archive")
	if err != nil {
		acfg = &config.Archive{Backend: "local"}
	}

	switch acfg.Backend {
	case "", "local":
		root := acfg.Dir
		if root == "" {
			root = cfg.ArtifactsDir()
		}
		return archive.NewLocal(root)
	case "s3":
		if acfg.Bucket == "" {
			return nil, fmt.Errorf("archive backend %q needs bucket in archive.yaml", acfg.Backend)
		}
		opts := s3.Options{Region: acfg.Region}
		if acfg.Endpoint != "" {
			opts.BaseEndpoint = aws.String(acfg.Endpoint)
			opts.UsePathStyle = true
		}
		if acfg.AccessKeyID != "" {
			creds := aws.Credentials{
				AccessKeyID:     acfg.AccessKeyID,
				SecretAccessKey: acfg.SecretAccessKey,
			}
			opts.Credentials = aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
				return creds, nil
			})
		}
		return archive.NewS3(s3.New(opts), acfg.Bucket, acfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown archive backend %q (want local or s3)", acfg.Backend)
	}
}
