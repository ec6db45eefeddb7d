// Package fuzztests houses Go fuzz harnesses for the candidc pipeline
// (source -> lexer -> parser -> resolver -> assembler -> printer). They guard
// against panics and hangs on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через весь конвейер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
