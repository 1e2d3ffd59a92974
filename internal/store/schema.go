package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// AlarmsColumns holds the columns for the "alarms" table. Deleted
	// alarms keep their row with deleted_at set so ids are never reused.
	AlarmsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "hour", Type: field.TypeInt},
		{Name: "minute", Type: field.TypeInt},
		{Name: "days", Type: field.TypeString, Size: 7},
		{Name: "sound", Type: field.TypeString},
		{Name: "armed", Type: field.TypeBool},
		{Name: "challenge", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeInt},
		{Name: "label", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "deleted_at", Type: field.TypeTime, Nullable: true},
	}
	// AlarmsTable holds the schema information for the "alarms" table.
	AlarmsTable = &schema.Table{
		Name:       "alarms",
		Columns:    AlarmsColumns,
		PrimaryKey: []*schema.Column{AlarmsColumns[0]},
	}

	// RetriggersColumns holds the columns for the "alarm_retriggers" table.
	RetriggersColumns = []*schema.Column{
		{Name: "alarm_id", Type: field.TypeString, Unique: true},
		{Name: "uuids", Type: field.TypeJSON},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// RetriggersTable holds the schema information for the "alarm_retriggers" table.
	RetriggersTable = &schema.Table{
		Name:       "alarm_retriggers",
		Columns:    RetriggersColumns,
		PrimaryKey: []*schema.Column{RetriggersColumns[0]},
	}

	// FacilitySchedulesColumns holds the columns for the "facility_schedules" table.
	FacilitySchedulesColumns = []*schema.Column{
		{Name: "uuid", Type: field.TypeString, Unique: true},
		{Name: "alarm_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "fire_at", Type: field.TypeTime, Nullable: true},
		{Name: "hour", Type: field.TypeInt},
		{Name: "minute", Type: field.TypeInt},
		{Name: "weekdays", Type: field.TypeJSON},
		{Name: "sound", Type: field.TypeString},
		{Name: "title", Type: field.TypeString},
		{Name: "last_fired_at", Type: field.TypeTime, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	// FacilitySchedulesTable holds the schema information for the "facility_schedules" table.
	FacilitySchedulesTable = &schema.Table{
		Name:       "facility_schedules",
		Columns:    FacilitySchedulesColumns,
		PrimaryKey: []*schema.Column{FacilitySchedulesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "facilityschedule_alarm_id", Columns: []*schema.Column{FacilitySchedulesColumns[1]}},
		},
	}

	// FacilityStateColumns holds the columns for the "facility_state" table.
	FacilityStateColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString},
	}
	// FacilityStateTable holds small key/value facts such as the pending
	// launch alarm id.
	FacilityStateTable = &schema.Table{
		Name:       "facility_state",
		Columns:    FacilityStateColumns,
		PrimaryKey: []*schema.Column{FacilityStateColumns[0]},
	}

	// ChallengeEventsColumns holds the columns for the "challenge_events" table.
	ChallengeEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "alarm_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeInt},
		{Name: "action", Type: field.TypeString},
		{Name: "prompt", Type: field.TypeString},
		{Name: "response", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "elapsed_ms", Type: field.TypeInt64},
	}
	// ChallengeEventsTable holds the schema information for the "challenge_events" table.
	ChallengeEventsTable = &schema.Table{
		Name:       "challenge_events",
		Columns:    ChallengeEventsColumns,
		PrimaryKey: []*schema.Column{ChallengeEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "challengeevent_timestamp", Columns: []*schema.Column{ChallengeEventsColumns[2]}},
			{Name: "challengeevent_session_id", Columns: []*schema.Column{ChallengeEventsColumns[3]}},
		},
	}

	// Tables holds every table managed by the migrator.
	Tables = []*schema.Table{
		AlarmsTable,
		RetriggersTable,
		FacilitySchedulesTable,
		FacilityStateTable,
		ChallengeEventsTable,
	}
)
