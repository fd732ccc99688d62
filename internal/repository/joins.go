package repository

import "gorm.io/gorm"

// withStudentAndCourse joins the student and course tables onto a record table
// aliased as alias.
func withStudentAndCourse(db *gorm.DB, table, alias string) *gorm.DB {
	return db.Table(table+" AS "+alias).
		Joins("JOIN students s ON s.id = "+alias+".student_id").
		Joins("JOIN courses c ON c.id = "+alias+".course_id")
}

const studentCourseColumns = "s.code AS student_code, s.full_name, c.code AS course_code, c.name AS course_name, c.term"
