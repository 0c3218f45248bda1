package models

// All returns every persistence model, in dependency order, for schema
// migration.
func All() []any {
	return []any{
		&MemberModel{},
		&UserAccountModel{},
		&AttendanceModel{},
		&WorkScheduleModel{},
		&ProjectModel{},
		&PositionModel{},
		&AssignmentModel{},
		&PLRecordModel{},
		&SelfReportModel{},
		&SkillCategoryModel{},
		&SkillModel{},
		&MemberSkillModel{},
		&EvaluationModel{},
		&InvoiceModel{},
		&InvoiceItemModel{},
		&ContractModel{},
		&SystemConfigModel{},
		&MemberToolModel{},
		&AuditLogModel{},
	}
}
