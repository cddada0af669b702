package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/dukahub/dukaweb/pkg/apiv1"
	"github.com/dukahub/dukaweb/pkg/clog"
	"github.com/dukahub/dukaweb/pkg/config"
	"github.com/dukahub/dukaweb/pkg/datalist"
	"github.com/dukahub/dukaweb/pkg/dukadb"
	"github.com/dukahub/dukaweb/pkg/dukadb/stor"
	"github.com/dukahub/dukaweb/pkg/notify"
	"github.com/dukahub/dukaweb/pkg/session"
	"github.com/dukahub/dukaweb/pkg/translate"
	"github.com/dukahub/dukaweb/pkg/views"
	"github.com/hashicorp/go-uuid"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultPort = 8090

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web tier",
	Run: func(cmd *cobra.Command, args []string) {
		c := mustLoadConfig()
		if err := runServe(cmd.Context(), c); err != nil {
			log.Fatalf("dukawebd: %s", err)
		}
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on, overrides "+config.PortKey)
	serveCmd.Flags().Bool("mock-backend", false, "serve from an in-memory backend instead of "+config.APIURLKey)
	_ = viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("mock-backend", serveCmd.Flags().Lookup("mock-backend"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, c config.Configer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	level := viper.GetString("log-level")
	if level == "" {
		level = c.GetKeyWithDefault(config.LogLevelKey, "info")
	}

	if err := clog.SetGlobalLoggerLevelFromString(level); err != nil {
		return err
	}

	translator, err := loadTranslator(c)
	if err != nil {
		return err
	}

	db := dukadb.MustConnectToDB(c.GetKeyWithDefault(config.DBDriverKey, "sqlite"), c.GetKeyWithDefault(config.DBDSNKey, "dukaweb.db"))
	stors := stor.NewGormStors(db)
	sessions := session.NewManager(stors, translate.ParseLanguage(c.GetKeyWithDefault(config.DefaultLanguageKey, string(translate.English))))
	hub := notify.NewHub()

	serviceToken, err := serviceTokenFor(c, viper.GetBool("mock-backend"))
	if err != nil {
		return err
	}

	var api apiv1.API
	if viper.GetBool("mock-backend") {
		log.Warnf("Using the in-memory backend, nothing will be persisted")
		api = apiv1.NewMockAPI()
	} else {
		api = apiv1.NewClient(c.MustGetKey(config.APIURLKey), c.GetKey(config.APITokenKey))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupRoutes(RouteDependencies{
		e:            e,
		api:          api,
		stors:        stors,
		sessions:     sessions,
		translator:   translator,
		hub:          hub,
		registry:     views.DefaultRegistry(),
		catalog:      datalist.DefaultCatalog(),
		logLevel:     level,
		serviceToken: serviceToken,
	})

	port := viper.GetInt("port")
	if port == 0 {
		port = c.GetIntKeyWithDefault(config.PortKey, defaultPort)
	}

	go func() {
		log.Infof("dukawebd listening on port %d", port)
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Unable to start web server: %s", err)
		}
	}()

	return shutdownOnSignal(ctx, e)
}

// serviceTokenFor returns the token login callers must present. Only the in-memory backend may
// run without a configured one, in which case a random token is generated and logged.
func serviceTokenFor(c config.Configer, mockBackend bool) (string, error) {
	if token := c.GetKey(config.ServiceTokenKey); token != "" {
		return token, nil
	}

	if !mockBackend {
		return "", fmt.Errorf("%s must be set unless --mock-backend is given", config.ServiceTokenKey)
	}

	token, err := uuid.GenerateUUID()
	if err != nil {
		return "", err
	}

	log.Warnf("%s not set, using generated service token %s", config.ServiceTokenKey, token)
	return token, nil
}

func shutdownOnSignal(ctx context.Context, e *echo.Echo) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.Infof("Got %s signal, shutting down...", sig)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

// loadTranslator uses DUKA_WORDS_FILE when set and the built-in vocabulary otherwise.
func loadTranslator(c config.Configer) (*translate.Translator, error) {
	path := c.GetKey(config.WordsFileKey)
	if path == "" {
		return translate.NewTranslator(translate.DefaultVocabulary()), nil
	}

	v, err := translate.LoadVocabulary(path)
	if err != nil {
		return nil, err
	}

	return translate.NewTranslator(v), nil
}
