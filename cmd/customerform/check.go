package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/contract"
)

type violation struct {
	file    string
	field   string
	message string
}

func newCheckCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate JSON payloads against the customer contract",
		Long:  "Validate JSON payloads against the createCustomer request schema. Reads stdin when no file is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := contract.Load(cmd.Context())
			if err != nil {
				return err
			}
			violations, err := checkPayloads(doc, args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range violations {
				location := v.file
				if v.field != "" {
					location += ":" + v.field
				}
				fmt.Fprintf(out, "%s: %s\n", location, v.message)
			}
			if len(violations) > 0 {
				return fmt.Errorf("%d contract violation(s)", len(violations))
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

func checkPayloads(doc *contract.Document, paths []string, stdin io.Reader) ([]violation, error) {
	if len(paths) == 0 {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return checkPayload(doc, "<stdin>", raw)
	}

	var out []violation
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		found, err := checkPayload(doc, path, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

func checkPayload(doc *contract.Document, name string, raw []byte) ([]violation, error) {
	err := doc.ValidateRequestBody(raw)
	if err == nil {
		return nil, nil
	}
	var verr *contract.ValidationError
	if !errors.As(err, &verr) {
		return nil, err
	}
	out := make([]violation, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		out = append(out, violation{file: name, field: issue.Field, message: issue.Message})
	}
	return out, nil
}
