package discord

import (
	"context"

	"github.com/infinitybotlist/infernoplex/internal/storage/model"
)

// SyncServerStats refreshes the stored member counts of every listed server
// this bot can still see. Run periodically by the task supervisor.
func (d *Discord) SyncServerStats(ctx context.Context) error {
	ids, err := model.ListServerIDs(ctx, d.db())
	if err != nil {
		return err
	}

	for _, id := range ids {
		stats, err := d.guildStats(id)
		if err != nil {
			d.logger.Debugf("Skipping stat sync for guild %s: %s.", id, err)
			continue
		}

		total, err := toInt32(stats.TotalMembers)
		if err != nil {
			d.logger.Errorf("Skipping stat sync for guild %s: %s.", id, err)
			continue
		}
		online, err := toInt32(stats.OnlineMembers)
		if err != nil {
			d.logger.Errorf("Skipping stat sync for guild %s: %s.", id, err)
			continue
		}

		if err := model.UpdateServerMemberCounts(ctx, d.db(), id, total, online); err != nil {
			return err
		}
	}

	return nil
}
