package shipping

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// LogNotifier reports shipments to the service log. It is the default
// notifier when no broker is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyShipment(_ context.Context, items []PackageItem) error {
	n.logger.Info("shipping service notification")
	for _, item := range items {
		n.logger.Info(fmt.Sprintf("%s - %gg", item.Name, item.WeightGrams))
	}
	n.logger.Info(fmt.Sprintf("total package weight: %.2fkg", TotalWeightKg(items)))
	return nil
}
