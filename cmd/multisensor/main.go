// Command multisensor bridges an AM2320 humidity/temperature sensor
// and up to four switch inputs to periodic MQTT state publications,
// provisioning itself through a local access point when no usable
// configuration exists.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/multisensor/internal/am2320"
	"github.com/sweeney/multisensor/internal/config"
	"github.com/sweeney/multisensor/internal/gpio"
	"github.com/sweeney/multisensor/internal/mqtt"
	"github.com/sweeney/multisensor/internal/portal"
	"github.com/sweeney/multisensor/internal/provision"
	"github.com/sweeney/multisensor/internal/schedule"
	"github.com/sweeney/multisensor/internal/sensor"
	"github.com/sweeney/multisensor/internal/wifi"
)

func main() {
	storage := flag.String("storage", "/var/lib/multisensor/config.dat", "Configuration storage file")
	chip := flag.String("gpio-chip", gpio.DefaultChip, "GPIO character device name")
	pin0 := flag.Int("pin0", gpio.DefaultPins[0], "BCM pin number for switch channel 0")
	pin1 := flag.Int("pin1", gpio.DefaultPins[1], "BCM pin number for switch channel 1")
	pin2 := flag.Int("pin2", gpio.DefaultPins[2], "BCM pin number for switch channel 2")
	pin3 := flag.Int("pin3", gpio.DefaultPins[3], "BCM pin number for switch channel 3")
	i2cBus := flag.String("i2c", "", "I2C bus name (empty selects the first available)")
	i2cAddr := flag.Int("i2c-addr", am2320.DefaultAddr, "I2C address of the AM2320 sensor")
	wifiIf := flag.String("wifi-if", "wlan0", "Wireless interface name")
	portalAddr := flag.String("portal", ":80", "Provisioning portal HTTP address")
	poll := flag.Duration("poll", 250*time.Millisecond, "Main cycle tick interval")
	printState := flag.Bool("print-state", false, "Capture one snapshot, print it, and exit")

	flag.Parse()

	pins := [sensor.NumSwitches]int{*pin0, *pin1, *pin2, *pin3}
	err := run(*storage, *chip, pins, *i2cBus, uint16(*i2cAddr), *wifiIf, *portalAddr, *poll, *printState)
	if err == nil {
		return
	}
	if errors.Is(err, provision.ErrRestartRequired) || errors.Is(err, provision.ErrPortalTimeout) {
		// The process supervisor relaunches us; the fresh start
		// re-enters provisioning against the new stored state.
		log.Printf("restarting: %v", err)
		os.Exit(1)
	}
	log.Fatalf("fatal: %v", err)
}

func run(storage, chipName string, pins [sensor.NumSwitches]int, i2cBus string, i2cAddr uint16, wifiIf, portalAddr string, poll time.Duration, printState bool) error {
	deviceID, err := provision.DeviceID()
	if err != nil {
		return fmt.Errorf("device identity: %w", err)
	}

	store := config.NewStore(storage)
	ctrl := provision.NewController(store, &wifi.NMCli{Interface: wifiIf}, portal.Runner{Addr: portalAddr}, deviceID)

	cfg, err := ctrl.Run(context.Background())
	if err != nil {
		return err
	}
	logConfig(cfg)

	// The sensor is essential; a module that cannot read it halts
	// rather than running degraded.
	env, err := am2320.NewRealSensor(i2cBus, i2cAddr)
	if err != nil {
		return fmt.Errorf("init am2320: %w", err)
	}
	defer env.Close()

	switches, err := gpio.NewRealReader(chipName, pins, cfg.EnabledChannels())
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer switches.Close()

	if printState {
		snap := sensor.Capture(env, switches, cfg.EnabledChannels(), time.Now())
		payload, err := mqtt.FormatPayload(snap, cfg.PropertyNames)
		if err != nil {
			return fmt.Errorf("format payload: %w", err)
		}
		fmt.Println(string(payload))
		return nil
	}

	client := mqtt.NewRealClient(cfg.ServerName, cfg.ServerPort, cfg.Username, cfg.Password, deviceID)
	defer client.Close()

	log.Printf("started: device=%s poll=%v soft=%v hard=%v", deviceID, poll, schedule.SoftInterval, schedule.HardInterval)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(cfg, env, switches, client, time.Now, ticker.C, sigCh)
}

// runLoop is the main operating cycle: keep the transport connected,
// capture a snapshot once per soft interval, and publish when the
// scheduler says to. It blocks only inside the transport's Connect.
func runLoop(cfg *config.Configuration, env sensor.EnvReader, switches sensor.SwitchReader, client mqtt.Client, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	sched := schedule.New(now())
	enabled := cfg.EnabledChannels()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			return nil

		case <-tick:
			if !client.IsConnected() {
				if err := client.Connect(); err != nil {
					log.Printf("mqtt connect: %v", err)
					continue
				}
				log.Printf("mqtt connected")
			}

			t := now()
			if !sched.Due(t) {
				continue
			}

			snap := sensor.Capture(env, switches, enabled, t)
			if !sched.Evaluate(snap, t) {
				continue
			}

			payload, err := mqtt.FormatPayload(snap, cfg.PropertyNames)
			if err != nil {
				log.Printf("format payload: %v", err)
				continue
			}
			if err := client.Publish(cfg.Topic, payload); err != nil {
				// Best-effort; the next due cycle tries again.
				log.Printf("publish error: %v", err)
				continue
			}
			log.Printf("published %s to %s", payload, cfg.Topic)
		}
	}
}

// logConfig emits the loaded configuration on the maintenance channel
// with the broker password masked.
func logConfig(cfg *config.Configuration) {
	log.Printf("configuration: server=%s:%d user=%s pass=%s topic=%s", cfg.ServerName, cfg.ServerPort, cfg.Username, mask(cfg.Password), cfg.Topic)
	for i, name := range cfg.PropertyNames {
		if name == "" {
			log.Printf("configuration: SW%d disabled", i)
		} else {
			log.Printf("configuration: SW%d property name %q", i, name)
		}
	}
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}
