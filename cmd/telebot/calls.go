package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/maine/telebot/internal/bot"
	"github.com/maine/telebot/internal/state"
	"github.com/maine/telebot/internal/telegram"
)

func newMeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the bot account (getMe)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.client.GetMe(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, me, func(p *printer) { p.user(me) })
		},
	}
}

func newUpdatesCmd(a *app) *cobra.Command {
	var opts telegram.GetUpdatesOptions

	cmd := &cobra.Command{
		Use:   "updates",
		Short: "Fetch pending updates (getUpdates)",
		Long: `Fetch one batch of updates. Updates are not acknowledged until a later call
passes --offset greater than their update_id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			updates, err := a.client.GetUpdates(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.print(cmd, updates, func(p *printer) { p.updates(updates) })
		},
	}

	cmd.Flags().Int64Var(&opts.Offset, "offset", 0, "First update_id to return")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum number of updates (1-100)")
	cmd.Flags().IntVarP(&opts.Timeout, "timeout", "t", 0, "Long polling timeout in seconds")
	return cmd
}

func newSendMessageCmd(a *app) *cobra.Command {
	var (
		opts  telegram.SendMessageOptions
		split bool
	)

	cmd := &cobra.Command{
		Use:   "send-message CHAT_ID TEXT",
		Short: "Send a text message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatID, err := parseID("chat id", args[0])
			if err != nil {
				return err
			}

			if split {
				sender := bot.NewSender(a.client, bot.WithSenderLogger(a.log))
				msgs, err := sender.ReplyLong(cmd.Context(), chatID, args[1])
				if err != nil {
					return err
				}
				return a.print(cmd, msgs, func(p *printer) {
					for _, m := range msgs {
						p.message(m)
					}
				})
			}

			msg, err := a.client.SendMessage(cmd.Context(), chatID, args[1], opts)
			if err != nil {
				return err
			}
			return a.print(cmd, msg, func(p *printer) { p.message(msg) })
		},
	}

	cmd.Flags().BoolVar(&opts.DisableWebPagePreview, "no-preview", false, "Disable link previews")
	cmd.Flags().BoolVar(&split, "split", false, "Split text longer than 4096 characters and retry temporary failures")
	cmd.Flags().Int64Var(&opts.ReplyToMessageID, "reply-to", 0, "Reply to this message id")
	return cmd
}

func newForwardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forward CHAT_ID FROM_CHAT_ID MESSAGE_ID",
		Short: "Forward a message",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs([]string{"chat id", "from chat id", "message id"}, args)
			if err != nil {
				return err
			}
			msg, err := a.client.ForwardMessage(cmd.Context(), ids[0], ids[1], ids[2])
			if err != nil {
				return err
			}
			return a.print(cmd, msg, func(p *printer) { p.message(msg) })
		},
	}
}

// newSendFileCmd строит команду для send* методов с одним файлом.
func newSendFileCmd(a *app, use, kind string) *cobra.Command {
	var (
		asFileID    bool
		contentType string
		caption     string
		duration    int
		replyTo     int64
	)

	cmd := &cobra.Command{
		Use:   use + " CHAT_ID PATH",
		Short: "Upload a " + kind + " or resend one by file id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatID, err := parseID("chat id", args[0])
			if err != nil {
				return err
			}

			var src telegram.FileSource = telegram.NewInputFile(args[1], contentType)
			if asFileID {
				src = telegram.FileID(args[1])
			}
			send := telegram.SendOptions{ReplyToMessageID: replyTo}

			ctx := cmd.Context()
			var msg telegram.Message
			switch kind {
			case "photo":
				msg, err = a.client.SendPhoto(ctx, chatID, src, telegram.SendPhotoOptions{Caption: caption, SendOptions: send})
			case "audio":
				msg, err = a.client.SendAudio(ctx, chatID, src, send)
			case "document":
				msg, err = a.client.SendDocument(ctx, chatID, src, send)
			case "sticker":
				msg, err = a.client.SendSticker(ctx, chatID, src, send)
			case "video":
				msg, err = a.client.SendVideo(ctx, chatID, src, telegram.SendVideoOptions{Caption: caption, Duration: duration, SendOptions: send})
			default:
				return errors.Errorf("unsupported file kind %q", kind)
			}
			if err != nil {
				return err
			}
			return a.print(cmd, msg, func(p *printer) { p.message(msg) })
		},
	}

	cmd.Flags().BoolVar(&asFileID, "file-id", false, "Treat PATH as a file id already stored on the server")
	cmd.Flags().StringVar(&contentType, "content-type", "", "Content type of the upload (default "+telegram.DefaultContentType+")")
	cmd.Flags().Int64Var(&replyTo, "reply-to", 0, "Reply to this message id")
	if kind == "photo" || kind == "video" {
		cmd.Flags().StringVar(&caption, "caption", "", "Caption shown under the "+kind)
	}
	if kind == "video" {
		cmd.Flags().IntVar(&duration, "duration", 0, "Video duration in seconds")
	}
	return cmd
}

func newSendLocationCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send-location CHAT_ID LATITUDE LONGITUDE",
		Short: "Send a point on the map",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatID, err := parseID("chat id", args[0])
			if err != nil {
				return err
			}
			lat, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.Wrapf(err, "invalid latitude %q", args[1])
			}
			lon, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return errors.Wrapf(err, "invalid longitude %q", args[2])
			}

			msg, err := a.client.SendLocation(cmd.Context(), chatID, lat, lon, telegram.SendOptions{})
			if err != nil {
				return err
			}
			return a.print(cmd, msg, func(p *printer) { p.message(msg) })
		},
	}
}

func newChatActionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat-action CHAT_ID ACTION",
		Short: "Show a status such as typing or upload_photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatID, err := parseID("chat id", args[0])
			if err != nil {
				return err
			}
			ok, err := a.client.SendChatAction(cmd.Context(), chatID, telegram.ChatAction(args[1]))
			if err != nil {
				return err
			}
			return a.print(cmd, ok, func(p *printer) { p.ok(ok) })
		},
	}
}

func newProfilePhotosCmd(a *app) *cobra.Command {
	var opts telegram.GetUserProfilePhotosOptions

	cmd := &cobra.Command{
		Use:   "profile-photos USER_ID",
		Short: "List a user's profile photos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user id", args[0])
			if err != nil {
				return err
			}
			photos, err := a.client.GetUserProfilePhotos(cmd.Context(), userID, opts)
			if err != nil {
				return err
			}
			return a.print(cmd, photos, func(p *printer) { p.profilePhotos(photos) })
		},
	}

	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Skip this many photos")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum number of photos (1-100)")
	return cmd
}

func newBroadcastCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast TEXT",
		Short: "Send a message to every chat subscribed through echobot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := state.NewFileStore(a.cfg.State.Path).Load(cmd.Context())
			if err != nil {
				return err
			}

			sender := bot.NewSender(a.client, bot.WithSenderLogger(a.log))
			sent, err := sender.Broadcast(cmd.Context(), st.ChatIDs(), args[0])
			if err != nil {
				return err
			}

			result := map[string]int{"sent": sent, "total": len(st.Recipients)}
			return a.print(cmd, result, func(p *printer) { p.broadcast(sent, len(st.Recipients)) })
		},
	}
}

func parseID(what, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Errorf("invalid %s %q", what, s)
	}
	return id, nil
}

func parseIDs(names, args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, s := range args {
		id, err := parseID(names[i], s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
