package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

type FetchCmd struct {
	Output string `short:"o" help:"Write the document to this file instead of stdout." type:"path"`
	Pretty bool   `help:"Indent the JSON output." default:"true" negatable:""`
}

func (c *FetchCmd) Run(ctx *Context) error {
	doc := ctx.Bridge.FetchData(ctx.Ctx)

	var (
		data []byte
		err  error
	)
	if c.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	data = append(data, '\n')

	if c.Output == "" {
		_, err = ctx.Out.Write(data)
		return err
	}
	if err := os.WriteFile(c.Output, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", c.Output, err)
	}
	fmt.Fprintf(ctx.Out, "Wrote %d bytes to %s\n", len(data), c.Output)
	return nil
}

type SaveCmd struct {
	File string `arg:"" help:"JSON file to save, or - for stdin." default:"-"`
}

func (c *SaveCmd) Run(ctx *Context) error {
	var (
		payload []byte
		err     error
	)
	if c.File == "-" {
		payload, err = io.ReadAll(ctx.In)
	} else {
		payload, err = os.ReadFile(c.File)
	}
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	res := ctx.Bridge.SaveData(ctx.Ctx, json.RawMessage(payload))
	if !res.Success {
		return errors.New(res.Message)
	}
	fmt.Fprintln(ctx.Out, res.Message)
	return nil
}
