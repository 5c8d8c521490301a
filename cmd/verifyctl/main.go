// verifyctl drives the verification intake API from the command line:
// it submits new requests (uploading the document first when a file is
// given) and lets reviewers list, inspect and transition them.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"verification-client/internal/api"
	"verification-client/internal/requests"
	"verification-client/internal/shared/config"
	"verification-client/internal/shared/telemetry"
	"verification-client/internal/submission"
	"verification-client/internal/uploads"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if err := telemetry.Init(cfg.Env); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer telemetry.Sync()

	client := api.NewClient(cfg.APIBaseURL, api.WithTimeout(cfg.RequestTimeout))
	facade := requests.NewAPI(client)
	uploader := uploads.NewUploader(cfg.APIBaseURL)
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "submit":
		err = runSubmit(ctx, facade, uploader, os.Args[2:])
	case "list":
		err = runList(ctx, facade, os.Args[2:])
	case "get":
		err = runGet(ctx, facade, os.Args[2:])
	case "set-status":
		err = runSetStatus(ctx, facade, os.Args[2:])
	case "delete":
		err = runDelete(ctx, facade, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: verifyctl <submit|list|get|set-status|delete> [flags]")
}

func runSubmit(ctx context.Context, facade *requests.API, uploader *uploads.Uploader, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)
	form := submission.Form{}
	fs.StringVar(&form.FullName, "full-name", "", "applicant full name")
	fs.StringVar(&form.Email, "email", "", "applicant email")
	fs.StringVar(&form.Phone, "phone", "", "applicant phone")
	fs.StringVar(&form.Country, "country", "", "country code, e.g. MX")
	fs.StringVar(&form.DocumentType, "document-type", "", "identity document type, e.g. INE")
	fs.StringVar(&form.DocumentNumber, "document-number", "", "identity document number")
	fs.StringVar(&form.DocumentImageURL, "document-image-url", "", "already uploaded document url")
	filePath := fs.String("file", "", "document file to upload before submitting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *filePath != "" {
		f, err := os.Open(*filePath)
		if err != nil {
			return err
		}
		defer f.Close()
		form.PendingFile = &submission.File{
			Name:        filepath.Base(*filePath),
			ContentType: mime.TypeByExtension(filepath.Ext(*filePath)),
			Reader:      f,
		}
	}

	submitter := submission.NewAPISubmitter(form, uploader, facade)
	created, fieldErrs, err := submitter.Submit(ctx)
	if err != nil {
		return err
	}
	if len(fieldErrs) > 0 {
		for _, fe := range fieldErrs {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("form has %d invalid fields", len(fieldErrs))
	}
	return printJSON(created)
}

func runList(ctx context.Context, facade *requests.API, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	name := fs.String("name", "", "filter by name substring")
	status := fs.String("status", "", "filter by status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := facade.List(ctx, requests.ListFilter{
		Name:   *name,
		Status: requests.Status(*status),
	})
	if err != nil {
		return err
	}
	return printJSON(items)
}

func runGet(ctx context.Context, facade *requests.API, args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	id := fs.String("id", "", "request id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	got, err := facade.Get(ctx, *id)
	if err != nil {
		return err
	}
	return printJSON(got)
}

func runSetStatus(ctx context.Context, facade *requests.API, args []string) error {
	fs := flag.NewFlagSet("set-status", flag.ExitOnError)
	id := fs.String("id", "", "request id")
	status := fs.String("status", "", "target status: pending|approved|rejected|requires_info")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *status == "" {
		return fmt.Errorf("-id and -status are required")
	}

	tracker := requests.NewTracker(facade)
	if err := tracker.Load(ctx, *id); err != nil {
		return err
	}
	if err := tracker.Transition(ctx, requests.Status(*status)); err != nil {
		return err
	}
	return printJSON(tracker.Current())
}

func runDelete(ctx context.Context, facade *requests.API, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "request id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	if err := facade.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Println("deleted", *id)
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
