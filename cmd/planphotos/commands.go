package main

import (
	"PlanPhotos/config"
	"PlanPhotos/internal/gallery"
	"PlanPhotos/internal/gateway"
	"PlanPhotos/internal/model"
	"PlanPhotos/internal/notify"
	"PlanPhotos/internal/upload"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"
)

var kindFlag = cli.StringFlag{
	Name:  "kind, k",
	Usage: "photo collection, exterior or interior",
	Value: string(model.Exterior),
}

func newApp(cfg *config.Config, in io.Reader, out, errOut io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "planphotos"
	app.Usage = "Manage the exterior and interior photos of a plan"
	app.Writer = out
	app.ErrWriter = errOut

	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "graphql-url", Usage: "photo API `URL`", Value: cfg.GraphQLURL},
		cli.StringFlag{Name: "upload-url", Usage: "upload endpoint `URL`", Value: cfg.UploadURL},
		cli.StringFlag{Name: "media-url", Usage: "media base `URL`", Value: cfg.BaseURL},
		cli.StringFlag{Name: "client, c", Usage: "client directory `NAME`", Value: cfg.ClientName},
		cli.StringFlag{Name: "plan, p", Usage: "plan `ID`", Value: cfg.PlanID},
		cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error", Value: cfg.LogLevel},
		cli.StringFlag{Name: "notify", Usage: "where messages go, console or log", Value: "console"},
	}

	app.Commands = []cli.Command{
		{
			Name:   "list",
			Usage:  "Show both photo collections",
			Action: listAction,
		},
		{
			Name:  "reorder",
			Usage: "Move a photo to another position",
			Flags: []cli.Flag{
				kindFlag,
				cli.IntFlag{Name: "from", Usage: "current `POSITION` as shown by list"},
				cli.IntFlag{Name: "to", Usage: "new `POSITION`"},
			},
			Action: reorderAction,
		},
		{
			Name:  "delete",
			Usage: "Remove a photo from its collection",
			Flags: []cli.Flag{
				kindFlag,
				cli.IntFlag{Name: "index, i", Usage: "`POSITION` as shown by list"},
				cli.BoolFlag{Name: "yes, y", Usage: "don't ask for confirmation"},
			},
			Action: deleteAction(bufio.NewReader(in)),
		},
		{
			Name:      "upload",
			Usage:     "Upload a photo and add it to a collection",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{kindFlag},
			Action:    uploadAction,
		},
	}

	return app
}

// session builds a controller for the plan named by the global flags and
// loads both collections.
func session(ctx *cli.Context) (*gallery.Controller, error) {
	owner := ctx.GlobalString("client")
	planID := ctx.GlobalString("plan")
	if owner == "" || planID == "" {
		return nil, errors.New("client and plan are required")
	}

	log := config.NewLogger(ctx.GlobalString("log-level"))
	log.SetOutput(ctx.App.ErrWriter)

	var notifier gallery.Notifier
	switch ctx.GlobalString("notify") {
	case "console":
		notifier = notify.NewConsole(ctx.App.Writer)
	case "log":
		notifier = notify.NewLog(log.WithField("component", "notify"))
	default:
		return nil, fmt.Errorf("unknown notifier %q", ctx.GlobalString("notify"))
	}

	gw, err := gateway.New(ctx.GlobalString("graphql-url"), owner, planID,
		gateway.WithLogger(log.WithField("component", "gateway")))
	if err != nil {
		return nil, err
	}

	ctrl := gallery.NewController(gallery.Options{
		Owner:        owner,
		PlanID:       planID,
		MediaBaseURL: ctx.GlobalString("media-url"),
		Gateway:      gw,
		Uploader:     upload.NewClient(ctx.GlobalString("upload-url"), nil),
		Notifier:     notifier,
		Log:          log.WithField("component", "gallery"),
	})
	gw.OnRefetch(ctrl.Reconcile)

	if err := ctrl.Load(context.Background()); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func parseKind(ctx *cli.Context) (model.Kind, error) {
	return model.ParseKind(ctx.String("kind"))
}

func printCollection(out io.Writer, ctrl *gallery.Controller, kind model.Kind) {
	photos := ctrl.Photos(kind)
	fmt.Fprintf(out, "%s (%d)\n", kind, len(photos))
	for i, p := range photos {
		fmt.Fprintf(out, "  %d. %s  %s\n", i+1, p.Reference, p.DisplaySrc)
	}
}

func listAction(ctx *cli.Context) error {
	ctrl, err := session(ctx)
	if err != nil {
		return err
	}
	for _, kind := range model.Kinds {
		printCollection(ctx.App.Writer, ctrl, kind)
	}
	return nil
}

func reorderAction(ctx *cli.Context) error {
	kind, err := parseKind(ctx)
	if err != nil {
		return err
	}
	ctrl, err := session(ctx)
	if err != nil {
		return err
	}

	if err := ctrl.Reorder(context.Background(), kind, ctx.Int("from")-1, ctx.Int("to")-1); err != nil {
		return err
	}
	printCollection(ctx.App.Writer, ctrl, kind)
	return nil
}

// confirm asks question on the app writer and accepts "y" or "yes".
func confirm(ctx *cli.Context, in *bufio.Reader, question string) bool {
	fmt.Fprintf(ctx.App.Writer, "%s [y/N] ", question)
	answer, _ := in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func deleteAction(in *bufio.Reader) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		kind, err := parseKind(ctx)
		if err != nil {
			return err
		}
		ctrl, err := session(ctx)
		if err != nil {
			return err
		}

		photos := ctrl.Photos(kind)
		pos := ctx.Int("index")
		if pos < 1 || pos > len(photos) {
			return fmt.Errorf("%w: %d of %d %s photos", gallery.ErrIndexOutOfRange, pos, len(photos), kind)
		}
		photo := photos[pos-1]

		if !ctx.Bool("yes") && !confirm(ctx, in, fmt.Sprintf("Delete %s photo %s?", kind, photo.Reference)) {
			fmt.Fprintln(ctx.App.Writer, "cancelled")
			return nil
		}

		if err := ctrl.Delete(context.Background(), photo, kind); err != nil {
			return err
		}
		printCollection(ctx.App.Writer, ctrl, kind)
		return nil
	}
}

func uploadAction(ctx *cli.Context) error {
	kind, err := parseKind(ctx)
	if err != nil {
		return err
	}
	fileName := ctx.Args().First()
	if fileName == "" {
		return errors.New("upload: FILE is required")
	}

	f, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		fmt.Fprintf(ctx.App.Writer, "uploading %s (%s)\n", filepath.Base(fileName), humanize.Bytes(uint64(info.Size())))
	}

	ctrl, err := session(ctx)
	if err != nil {
		return err
	}
	if err := ctrl.Upload(context.Background(), kind, filepath.Base(fileName), f); err != nil {
		return err
	}
	printCollection(ctx.App.Writer, ctrl, kind)
	return nil
}
