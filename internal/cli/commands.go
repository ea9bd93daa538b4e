package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
)

type LeaderboardCmd struct {
	JSON  bool `help:"Print standings as JSON."`
	Limit int  `short:"n" help:"Show only the top N employees (0 for all)."`
}

func (c *LeaderboardCmd) Run(ctx *Context) error {
	standings := ctx.Performance.Leaderboard(ctx.Ctx)
	if c.Limit > 0 && len(standings) > c.Limit {
		standings = standings[:c.Limit]
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(standings)
	}

	if len(standings) == 0 {
		fmt.Fprintln(ctx.Out, "No active employees")
		return nil
	}
	tw := tabwriter.NewWriter(ctx.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tEMPLOYEE\tSCORE\tADMIN\tPEER\tATTENDANCE")
	for _, s := range standings {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%.2f\t%.2f\n",
			s.Rank, s.Employee.Name, s.Weighted, s.Admin, s.Peer, s.Attendance)
	}
	return tw.Flush()
}

type AutoPopulateCmd struct{}

func (c *AutoPopulateCmd) Run(ctx *Context) error {
	created, err := ctx.Tasks.AutoPopulate(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("auto-populate: %w", err)
	}
	fmt.Fprintf(ctx.Out, "Created %d task(s) from templates\n", created)
	return nil
}

type SetPasswordCmd struct {
	Password string `arg:"" help:"New admin password."`
}

func (c *SetPasswordCmd) Run(ctx *Context) error {
	if err := ctx.Auth.SetPassword(ctx.Ctx, c.Password); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	fmt.Fprintln(ctx.Out, "Admin password updated")
	return nil
}

var errPasswordMismatch = errors.New("password does not match")

type VerifyPasswordCmd struct {
	Password string `arg:"" help:"Password to check against the stored admin credential."`
}

func (c *VerifyPasswordCmd) Run(ctx *Context) error {
	kind, ok := ctx.Auth.Verify(ctx.Ctx, c.Password)
	if !ok {
		return errPasswordMismatch
	}
	fmt.Fprintf(ctx.Out, "Password matches (stored as %s)\n", kind)
	return nil
}
