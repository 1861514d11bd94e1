package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"

	"github.com/infinitybotlist/infernoplex/internal/storage"
)

type Config struct {
	appID       string
	frontendURL string
	cdnPath     string
}

func NewConfig(appID, frontendURL, cdnPath string) *Config {
	return &Config{
		appID:       appID,
		frontendURL: frontendURL,
		cdnPath:     cdnPath,
	}
}

type Discord struct {
	ctx     context.Context
	logger  *zap.SugaredLogger
	session *discordgo.Session
	config  *Config
	storage *storage.Storage
}

func NewDiscord(ctx context.Context, log *zap.Logger, auth string, config *Config, store *storage.Storage) (*Discord, error) {
	s, err := discordgo.New(auth)
	if err != nil {
		return nil, err
	}

	s.Identify.Intents = discordgo.IntentGuilds | discordgo.IntentGuildMembers | discordgo.IntentGuildPresences

	return &Discord{ctx: ctx, logger: log.Sugar(), session: s, config: config, storage: store}, nil
}

func (d *Discord) addHandlers() {
	d.session.AddHandlerOnce(d.onReady)
	d.session.AddHandler(d.onInteractionCreate)
	d.session.AddHandler(d.onGuildMemberUpdate)
	d.session.AddHandler(d.onGuildMemberRemove)
}

func (d *Discord) Connect() error {
	d.addHandlers()
	return d.session.Open()
}

func (d *Discord) Session() *discordgo.Session {
	return d.session
}

func (d *Discord) db() *pgxpool.Pool {
	return d.storage.Pool()
}

func (d *Discord) Close() error {
	return d.session.Close()
}
