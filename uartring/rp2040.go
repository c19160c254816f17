//go:build rp2040

package uartring

import (
	"machine"

	"github.com/jangala-dev/tinygo-uartx/uartx"
)

// HardwareConfig describes the pin/format setup for one on-device UART.
type HardwareConfig struct {
	BaudRate uint32
	TX, RX   uint8
	DataBits uint8
	StopBits uint8
	Parity   uartx.UARTParity
}

// OpenUART0 configures the board's UART0 per cfg and returns it as a Port.
func OpenUART0(cfg HardwareConfig) (Port, error) {
	return openPort(uartx.UART0, cfg)
}

// OpenUART1 configures the board's UART1 per cfg and returns it as a Port.
func OpenUART1(cfg HardwareConfig) (Port, error) {
	return openPort(uartx.UART1, cfg)
}

func openPort(u *uartx.UART, cfg HardwareConfig) (Port, error) {
	if err := u.Configure(uartx.UARTConfig{
		BaudRate: cfg.BaudRate,
		TX:       machine.Pin(cfg.TX),
		RX:       machine.Pin(cfg.RX),
	}); err != nil {
		return nil, err
	}
	if cfg.DataBits > 0 {
		if err := u.SetFormat(cfg.DataBits, cfg.StopBits, cfg.Parity); err != nil {
			return nil, err
		}
	}
	return u, nil
}
