package role

// table lists every role known to the UAST schema, indexed by ID.
// Entries must stay sorted by ID with no gaps; IDs are part of the wire format.
var table = [...]entry{
	{0, "INVALID", "Invalid"},
	{1, "IDENTIFIER", "Identifier"},
	{2, "QUALIFIED", "Qualified"},
	{3, "OPERATOR", "Operator"},
	{4, "BINARY", "Binary"},
	{5, "UNARY", "Unary"},
	{6, "LEFT", "Left"},
	{7, "RIGHT", "Right"},
	{8, "INFIX", "Infix"},
	{9, "POSTFIX", "Postfix"},
	{10, "BITWISE", "Bitwise"},
	{11, "BOOLEAN", "Boolean"},
	{12, "UNSIGNED", "Unsigned"},
	{13, "LEFT_SHIFT", "LeftShift"},
	{14, "RIGHT_SHIFT", "RightShift"},
	{15, "OR", "Or"},
	{16, "XOR", "Xor"},
	{17, "AND", "And"},
	{18, "EXPRESSION", "Expression"},
	{19, "STATEMENT", "Statement"},
	{20, "EQUAL", "Equal"},
	{21, "NOT", "Not"},
	{22, "LESS_THAN", "LessThan"},
	{23, "LESS_THAN_OR_EQUAL", "LessThanOrEqual"},
	{24, "GREATER_THAN", "GreaterThan"},
	{25, "GREATER_THAN_OR_EQUAL", "GreaterThanOrEqual"},
	{26, "IDENTICAL", "Identical"},
	{27, "CONTAINS", "Contains"},
	{28, "INCREMENT", "Increment"},
	{29, "DECREMENT", "Decrement"},
	{30, "NEGATIVE", "Negative"},
	{31, "POSITIVE", "Positive"},
	{32, "DEREFERENCE", "Dereference"},
	{33, "TAKE_ADDRESS", "TakeAddress"},
	{34, "FILE", "File"},
	{35, "ADD", "Add"},
	{36, "SUBSTRACT", "Substract"},
	{37, "MULTIPLY", "Multiply"},
	{38, "DIVIDE", "Divide"},
	{39, "MODULO", "Modulo"},
	{40, "PACKAGE", "Package"},
	{41, "DECLARATION", "Declaration"},
	{42, "IMPORT", "Import"},
	{43, "PATHNAME", "Pathname"},
	{44, "ALIAS", "Alias"},
	{45, "FUNCTION", "Function"},
	{46, "BODY", "Body"},
	{47, "NAME", "Name"},
	{48, "RECEIVER", "Receiver"},
	{49, "ARGUMENT", "Argument"},
	{50, "VALUE", "Value"},
	{51, "ARGS_LIST", "ArgsList"},
	{52, "BASE", "Base"},
	{53, "IMPLEMENTS", "Implements"},
	{54, "INSTANCE", "Instance"},
	{55, "SUBTYPE", "Subtype"},
	{56, "SUBPACKAGE", "Subpackage"},
	{57, "MODULE", "Module"},
	{58, "FRIEND", "Friend"},
	{59, "WORLD", "World"},
	{60, "IF", "If"},
	{61, "CONDITION", "Condition"},
	{62, "THEN", "Then"},
	{63, "ELSE", "Else"},
	{64, "SWITCH", "Switch"},
	{65, "CASE", "Case"},
	{66, "DEFAULT", "Default"},
	{67, "FOR", "For"},
	{68, "INITIALIZATION", "Initialization"},
	{69, "UPDATE", "Update"},
	{70, "ITERATOR", "Iterator"},
	{71, "WHILE", "While"},
	{72, "DO_WHILE", "DoWhile"},
	{73, "BREAK", "Break"},
	{74, "CONTINUE", "Continue"},
	{75, "GOTO", "Goto"},
	{76, "BLOCK", "Block"},
	{77, "SCOPE", "Scope"},
	{78, "RETURN", "Return"},
	{79, "TRY", "Try"},
	{80, "CATCH", "Catch"},
	{81, "FINALLY", "Finally"},
	{82, "THROW", "Throw"},
	{83, "ASSERT", "Assert"},
	{84, "CALL", "Call"},
	{85, "CALLEE", "Callee"},
	{86, "POSITIONAL", "Positional"},
	{87, "NOOP", "Noop"},
	{88, "LITERAL", "Literal"},
	{89, "BYTE", "Byte"},
	{90, "BYTE_STRING", "ByteString"},
	{91, "CHARACTER", "Character"},
	{92, "LIST", "List"},
	{93, "MAP", "Map"},
	{94, "NULL", "Null"},
	{95, "NUMBER", "Number"},
	{96, "REGEXP", "Regexp"},
	{97, "SET", "Set"},
	{98, "STRING", "String"},
	{99, "TUPLE", "Tuple"},
	{100, "TYPE", "Type"},
	{101, "ENTRY", "Entry"},
	{102, "KEY", "Key"},
	{103, "PRIMITIVE", "Primitive"},
	{104, "ASSIGNMENT", "Assignment"},
	{105, "THIS", "This"},
	{106, "COMMENT", "Comment"},
	{107, "DOCUMENTATION", "Documentation"},
	{108, "WHITESPACE", "Whitespace"},
	{109, "INCOMPLETE", "Incomplete"},
	{110, "UNANNOTATED", "Unannotated"},
	{111, "VISIBILITY", "Visibility"},
	{112, "ANNOTATION", "Annotation"},
	{113, "ANONYMOUS", "Anonymous"},
	{114, "ENUMERATION", "Enumeration"},
	{115, "ARITHMETIC", "Arithmetic"},
	{116, "RELATIONAL", "Relational"},
	{117, "VARIABLE", "Variable"},
}
